package rope

import "github.com/zylacode/editorcore/coreerr"

func errOutOfRange(op string) error {
	return coreerr.New(coreerr.OutOfRange, "rope."+op+": start/end out of range")
}

func errNoSuchLine() error {
	return coreerr.New(coreerr.OutOfRange, "rope.Line: no such line")
}
