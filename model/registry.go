package model

// ClaimStatus defines the decision state of a damage claim.
type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "PENDING"  // Claim submitted, awaiting a verifier decision
	ClaimStatusApproved ClaimStatus = "APPROVED" // Claim approved by a verifier (terminal)
	ClaimStatusRejected ClaimStatus = "REJECTED" // Claim rejected by a verifier (terminal)
)

// Enrollment fixes a farmer's claim window. It is created once per farmer and
// never mutated or deleted afterwards. Timestamps are ledger time in unix
// seconds.
type Enrollment struct {
	EnrollmentTimestamp int64 `json:"enrollmentTimestamp"`
	ClaimDeadline       int64 `json:"claimDeadline"`
}

// Claim is a farmer's single damage assertion. At most one exists per farmer,
// ever: a claim record, whatever its status, permanently blocks any further
// submission by that farmer. VerifierID and VerificationTimestamp stay zero
// until a decision is recorded, and are set exactly once.
type Claim struct {
	ProofHash             string      `json:"proofHash"`
	Status                ClaimStatus `json:"status"`
	SubmissionTimestamp   int64       `json:"submissionTimestamp"`
	VerifierID            string      `json:"verifierId"`
	VerificationTimestamp int64       `json:"verificationTimestamp"`
}

// ClaimDetails is the query projection of a Claim, carrying the farmer
// identity alongside the stored record.
type ClaimDetails struct {
	FarmerID              string      `json:"farmerId"`
	ProofHash             string      `json:"proofHash"`
	Status                ClaimStatus `json:"status"`
	SubmissionTimestamp   int64       `json:"submissionTimestamp"`
	VerifierID            string      `json:"verifierId"`
	VerificationTimestamp int64       `json:"verificationTimestamp"`
}

// EnrollmentDetails is the query projection of an Enrollment.
type EnrollmentDetails struct {
	FarmerID            string `json:"farmerId"`
	EnrollmentTimestamp int64  `json:"enrollmentTimestamp"`
	ClaimDeadline       int64  `json:"claimDeadline"`
}
