package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	bser "github.com/pierre7donaire/buck"
)

// renderValue writes a pseudo-JSON rendering of val to w. BSER's
// integer width distinctions (§3.1) have no JSON equivalent, so each
// integer is annotated with its declared wire type as a trailing
// comment — lossy renderings elsewhere in this tool (see [bser.FromJSON])
// are intentional; this one is for humans, not round-tripping.
func renderValue(w io.Writer, val bser.Value, indent int) {
	switch v := val.(type) {
	case bser.Null:
		fmt.Fprint(w, "null")
	case bser.Bool:
		fmt.Fprint(w, strconv.FormatBool(bool(v)))
	case bser.Int8:
		fmt.Fprintf(w, "%d /* int8 */", int8(v))
	case bser.Int16:
		fmt.Fprintf(w, "%d /* int16 */", int16(v))
	case bser.Int32:
		fmt.Fprintf(w, "%d /* int32 */", int32(v))
	case bser.Int64:
		fmt.Fprintf(w, "%d /* int64 */", int64(v))
	case bser.Real:
		fmt.Fprintf(w, "%g", float64(v))
	case bser.String:
		fmt.Fprintf(w, "%q", string(v))
	case bser.Array:
		renderArray(w, v, indent)
	case *bser.Object:
		renderObject(w, v, indent)
	default:
		fmt.Fprintf(w, "<unrenderable %T>", val)
	}
}

func renderArray(w io.Writer, arr bser.Array, indent int) {
	if len(arr) == 0 {
		fmt.Fprint(w, "[]")
		return
	}
	fmt.Fprint(w, "[\n")
	for i, item := range arr {
		fmt.Fprint(w, strings.Repeat("  ", indent+1))
		renderValue(w, item, indent+1)
		if i != len(arr)-1 {
			fmt.Fprint(w, ",")
		}
		fmt.Fprint(w, "\n")
	}
	fmt.Fprint(w, strings.Repeat("  ", indent)+"]")
}

func renderObject(w io.Writer, obj *bser.Object, indent int) {
	if obj.Len() == 0 {
		fmt.Fprint(w, "{}")
		return
	}
	fmt.Fprint(w, "{\n")
	for i, key := range obj.Keys {
		fmt.Fprint(w, strings.Repeat("  ", indent+1))
		fmt.Fprintf(w, "%q: ", key)
		renderValue(w, obj.Values[i], indent+1)
		if i != len(obj.Keys)-1 {
			fmt.Fprint(w, ",")
		}
		fmt.Fprint(w, "\n")
	}
	fmt.Fprint(w, strings.Repeat("  ", indent)+"}")
}
