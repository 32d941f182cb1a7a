package dedupe

// Similarity returns a ratio in [0, 1] measuring how alike two strings
// are: twice the number of matching characters divided by the total
// length of both strings, where matches are found by repeatedly taking
// the longest common contiguous block and recursing on the pieces to
// either side.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	matched := 0
	for _, block := range matchingBlocks(ra, rb) {
		matched += block.size
	}
	return 2 * float64(matched) / float64(total)
}

type match struct {
	a, b, size int
}

// matchingBlocks finds non-overlapping matching runs in order, by
// recursively splitting around the longest match of each region.
func matchingBlocks(a, b []rune) []match {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	type region struct {
		alo, ahi, blo, bhi int
	}
	queue := []region{{0, len(a), 0, len(b)}}
	var blocks []match
	for len(queue) > 0 {
		reg := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		m := longestMatch(a, b2j, reg.alo, reg.ahi, reg.blo, reg.bhi)
		if m.size == 0 {
			continue
		}
		blocks = append(blocks, m)
		if reg.alo < m.a && reg.blo < m.b {
			queue = append(queue, region{reg.alo, m.a, reg.blo, m.b})
		}
		if m.a+m.size < reg.ahi && m.b+m.size < reg.bhi {
			queue = append(queue, region{m.a + m.size, reg.ahi, m.b + m.size, reg.bhi})
		}
	}
	return blocks
}

// longestMatch finds the longest run of runes common to a[alo:ahi] and
// b[blo:bhi]. Ties go to the match starting earliest in a, then
// earliest in b.
func longestMatch(a []rune, b2j map[rune][]int, alo, ahi, blo, bhi int) match {
	best := match{a: alo, b: blo}
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newJ2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newJ2len[j] = k
			if k > best.size {
				best = match{a: i - k + 1, b: j - k + 1, size: k}
			}
		}
		j2len = newJ2len
	}
	return best
}
