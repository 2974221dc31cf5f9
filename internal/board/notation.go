package board

import "strings"

// Record renders a move effect in the log format clients display:
// "P1(e2-e4)", "N1(g1-f3)xp4", "P3(a7-a8)=Q", "K1(e1-g1)".
func Record(e MoveEffect) string {
	var sb strings.Builder
	sb.WriteString(e.Moved.Label())
	sb.WriteByte('(')
	sb.WriteString(e.From.String())
	sb.WriteByte('-')
	sb.WriteString(e.To.String())
	sb.WriteByte(')')
	if !e.Captured.IsEmpty() {
		sb.WriteByte('x')
		sb.WriteString(e.Captured.Label())
	}
	if e.Promotion != NoKind {
		sb.WriteByte('=')
		sb.WriteByte(e.Promotion.Char())
	}
	return sb.String()
}
