package pipeline

// Chunk splits tokens into batches so that the command, a space, and the
// space-joined batch stay within budget characters. A token too long to fit
// even in an empty batch is placed alone rather than dropped.
func Chunk(command string, tokens []string, budget int) [][]string {
	if len(tokens) == 0 {
		return nil
	}

	var (
		chunks  [][]string
		current []string
		left    int
	)
	for _, tok := range tokens {
		cost := len(tok) + 1 // separating space
		if len(current) > 0 && left < cost {
			chunks = append(chunks, current)
			current = nil
		}
		if len(current) == 0 {
			left = budget - len(command)
		}
		current = append(current, tok)
		left -= cost
	}
	return append(chunks, current)
}
