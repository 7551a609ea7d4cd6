package planner

import "github.com/samber/lo"

// BuildPool expands every subject into one token per credit, in input order.
func BuildPool(subjects []Subject) []Token {
	return lo.FlatMap(subjects, func(s Subject, _ int) []Token {
		return lo.Times(max(s.Credits, 0), func(int) Token {
			return Token{Subject: s.Name, Code: s.Code, Teacher: s.Teacher}
		})
	})
}

// PreparePool shuffles the pool for seed and rotates it left by seed mod len.
func PreparePool(seq Sequencer, pool []Token, seed int64) []Token {
	shuffled := Permute(seq, pool, seed)
	n := len(shuffled)
	if n == 0 {
		return shuffled
	}
	shift := int(((seed % int64(n)) + int64(n)) % int64(n))
	rotated := make([]Token, 0, n)
	rotated = append(rotated, shuffled[shift:]...)
	return append(rotated, shuffled[:shift]...)
}
