package types

// TransferState is the lifecycle state of a pending transfer.
type TransferState string

const (
	TransferPending   TransferState = "pending"
	TransferUploading TransferState = "uploading"
	TransferCompleted TransferState = "completed"
	TransferError     TransferState = "error"
)

// Terminal reports whether no further transitions occur for this state.
func (s TransferState) Terminal() bool {
	return s == TransferCompleted || s == TransferError
}

// PendingTransfer is one queued client-side upload. Owned exclusively by the
// scheduler; consumers only ever see copies.
type PendingTransfer struct {
	ID                string        `json:"id"`
	LocalPath         string        `json:"localPath"`
	DisplayName       string        `json:"displayName"`
	DestinationFolder string        `json:"destinationFolder"`
	State             TransferState `json:"state"`
	ProgressPercent   int           `json:"progressPercent"`
	Error             string        `json:"error,omitempty"`
}
