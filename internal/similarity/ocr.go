package similarity

// ocrDigits maps characters that OCR commonly produces in place of digits.
var ocrDigits = map[rune]rune{
	'O': '0', 'o': '0', 'D': '0', 'd': '0',
	'I': '1', 'i': '1', 'l': '1',
	'Z': '2', 'z': '2',
	'S': '5', 's': '5',
	'G': '6', 'g': '6',
	'B': '8', 'b': '8',
}

// confusionPairs lists characters OCR swaps for one another. Pairs are
// checked in both directions.
var confusionPairs = [][2]rune{
	{'0', 'O'}, {'1', 'I'}, {'1', 'l'}, {'2', 'Z'},
	{'5', 'S'}, {'6', 'G'}, {'8', 'B'}, {'0', 'D'},
	{'1', '7'}, {'2', '7'}, {'2', '1'}, {'0', '8'},
}

const yearLen = 4

// NormalizeOCRYear replaces OCR look-alike letters with the digits they
// stand for. It is used for comparison only; callers keep the raw year.
func NormalizeOCRYear(year string) string {
	out := []rune(year)
	for i, r := range out {
		if d, ok := ocrDigits[r]; ok {
			out[i] = d
		}
	}
	return string(out)
}

// IsOCRConfusable reports whether two 4-character years plausibly differ
// only by OCR misrecognition. Differences are counted after normalization:
// one differing position is always confusable, two are confusable only when
// they swap the characters of a known confusion pair.
func IsOCRConfusable(a, b string) bool {
	ra := []rune(NormalizeOCRYear(a))
	rb := []rune(NormalizeOCRYear(b))
	if len(ra) != yearLen || len(rb) != yearLen {
		return false
	}

	var diff []int
	for i := 0; i < yearLen; i++ {
		if ra[i] != rb[i] {
			diff = append(diff, i)
		}
	}

	switch len(diff) {
	case 0, 1:
		return true
	case 2:
		p, q := diff[0], diff[1]
		for _, pair := range confusionPairs {
			if isSwap(ra[p], rb[p], ra[q], rb[q], pair[0], pair[1]) ||
				isSwap(ra[p], rb[p], ra[q], rb[q], pair[1], pair[0]) {
				return true
			}
		}
	}
	return false
}

// isSwap reports whether position p holds x in a and y in b while position
// q holds y in a and x in b.
func isSwap(ap, bp, aq, bq, x, y rune) bool {
	return ap == x && bp == y && aq == y && bq == x
}
