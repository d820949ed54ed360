package walk

import (
	"errors"

	"github.com/zostay/go-mailsend/message"
)

// ErrSkipChildren may be returned by a Processor to keep AndProcess from
// descending into the sub-parts of the current part. AndProcess itself does
// not return it.
var ErrSkipChildren = errors.New("skip children")

// Processor is called by AndProcess for each part. The parents slice holds the
// ancestry of the part, outermost first. It is empty for the part AndProcess
// was called on.
type Processor func(part message.Part, parents []message.Part) error

// AndProcess walks the part tree depth first, parents before children, and
// calls processor for every part. An error from processor stops the walk and
// is returned, except ErrSkipChildren.
func AndProcess(processor Processor, msg message.Part) error {
	return andProcess(processor, msg, make([]message.Part, 0, 4))
}

func andProcess(processor Processor, part message.Part, parents []message.Part) error {
	err := processor(part, parents)
	if errors.Is(err, ErrSkipChildren) {
		return nil
	}
	if err != nil {
		return err
	}

	if !part.IsMultipart() {
		return nil
	}

	parents = append(parents, part)
	for _, sub := range part.GetParts() {
		if err := andProcess(processor, sub, parents[:len(parents):len(parents)]); err != nil {
			return err
		}
	}

	return nil
}

// Leaves returns every leaf of the tree in document order.
func Leaves(msg message.Part) []message.Part {
	var leaves []message.Part
	_ = AndProcess(func(part message.Part, _ []message.Part) error {
		if !part.IsMultipart() {
			leaves = append(leaves, part)
		}
		return nil
	}, msg)
	return leaves
}
