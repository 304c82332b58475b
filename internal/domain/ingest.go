package domain

// RejectReason identifies which invariant a raw row violated. Reasons are
// stable strings so a malformed row always reproduces the same rejection.
type RejectReason string

const (
	ReasonUnknownRegion   RejectReason = "unknown_region"
	ReasonYearOutOfRange  RejectReason = "year_out_of_range"
	ReasonUnknownItem     RejectReason = "unknown_item"
	ReasonUnknownVariable RejectReason = "unknown_variable"
	ReasonUnitMismatch    RejectReason = "unit_mismatch"
	ReasonBadValue        RejectReason = "bad_value"
)

// Rejection describes one skipped row. Row is the 1-based index of the
// data row in the source, not counting the header.
type Rejection struct {
	Row    int          `json:"row"`
	Reason RejectReason `json:"reason"`
	Detail string       `json:"detail,omitempty"`
}

// Summary is the result of one ingestion run. Row-level failures never
// abort the batch, they end up here.
type Summary struct {
	Accepted   int         `json:"accepted"`
	Rejected   int         `json:"rejected"`
	Rejections []Rejection `json:"rejections,omitempty"`
}
