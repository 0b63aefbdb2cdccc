package debug

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schemacompose/schemacompose/ir"
)

// Node adapts *ir.Node for %s formatting in log lines.
type Node struct{ *ir.Node }

func (y Node) String() string {
	d, err := y.Node.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("[raw *ir.Node] %v", y.Node)
	}
	return string(d)
}

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			d, err := x.MarshalJSON()
			if err != nil {
				args[i] = fmt.Sprintf("[raw *ir.Node] %v", x)
				continue
			}
			args[i] = string(d)
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
