package ports

// InputSource supplies interactive answers to the workflow
type InputSource interface {
	// Prompt shows label and returns the trimmed answer
	Prompt(label string) (string, error)

	// Warn tells the user an answer was rejected
	Warn(message string)
}

// ApprovalRequest describes the pending commit shown to the user
type ApprovalRequest struct {
	Operation     string // Description of the operation
	ImpactSummary string // Summary of the impact
}

// Approver decides whether the pending transaction is committed
type Approver interface {
	RequestApproval(req ApprovalRequest) (bool, error)
}
