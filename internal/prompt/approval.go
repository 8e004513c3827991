package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/enunezf/studentdb/internal/core/ports"
)

// InteractiveApprover asks the user before the transaction is committed
type InteractiveApprover struct {
	console *Console
}

// NewInteractiveApprover creates an approver sharing the workflow console
func NewInteractiveApprover(console *Console) *InteractiveApprover {
	return &InteractiveApprover{console: console}
}

// RequestApproval shows the pending change and asks for y/n confirmation
func (a *InteractiveApprover) RequestApproval(req ports.ApprovalRequest) (bool, error) {
	displayOperationDetails(a.console.out, req)
	return a.console.Confirm("Commit these changes?")
}

// AutoApprover always returns the same decision
type AutoApprover struct {
	approve bool
}

// NewAutoApprover creates an auto-approver with the specified behavior
func NewAutoApprover(approve bool) *AutoApprover {
	return &AutoApprover{approve: approve}
}

// RequestApproval returns the configured approval decision
func (a *AutoApprover) RequestApproval(req ports.ApprovalRequest) (bool, error) {
	return a.approve, nil
}

// DryRunApprover displays what would be committed but never approves
type DryRunApprover struct {
	out io.Writer
}

// NewDryRunApprover creates a new dry-run approver
func NewDryRunApprover(out io.Writer) *DryRunApprover {
	return &DryRunApprover{out: out}
}

// RequestApproval displays the operation but always returns false
func (a *DryRunApprover) RequestApproval(req ports.ApprovalRequest) (bool, error) {
	notice := color.New(color.FgBlue)
	notice.Fprintln(a.out, "\n[DRY-RUN MODE] The following changes would be committed:")
	displayOperationDetails(a.out, req)
	notice.Fprintln(a.out, "No changes were made (dry-run mode).")
	return false, nil
}

// displayOperationDetails shows the operation information to the user
func displayOperationDetails(out io.Writer, req ports.ApprovalRequest) {
	bold := color.New(color.Bold)

	fmt.Fprintln(out, strings.Repeat("─", 60))
	bold.Fprint(out, "Operation:")
	fmt.Fprintf(out, " %s\n", req.Operation)

	if req.ImpactSummary != "" {
		bold.Fprint(out, "Impact:")
		fmt.Fprintf(out, " %s\n", req.ImpactSummary)
	}

	fmt.Fprintln(out, strings.Repeat("─", 60))
}
