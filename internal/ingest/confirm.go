package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/s-pearce/ooicgsn-data-tools/internal/model"
)

// Confirmer decides whether a built request should be submitted. Separating
// the policy from the loop lets the pipeline run interactively, auto-approve
// under --yes, or follow a script in tests.
type Confirmer interface {
	Confirm(req *model.IngestRequest) (bool, error)
}

// AutoApprove confirms every request without prompting.
type AutoApprove struct{}

func (AutoApprove) Confirm(*model.IngestRequest) (bool, error) {
	return true, nil
}

// Console prompts the operator on Out and reads the answer from In. An empty
// answer means yes; any answer containing 'y' proceeds.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole returns a Console reading answers from in and prompting on out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

func (c *Console) Confirm(*model.IngestRequest) (bool, error) {
	fmt.Fprint(c.out, "Review ingest request. Is this correct? <y>/n: ")
	line, err := c.in.ReadString('\n')
	if err == io.EOF && line == "" {
		return false, fmt.Errorf("confirmation input closed")
	}
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		return true, nil
	}
	return strings.Contains(answer, "y"), nil
}
