package workflow

import (
	"context"

	"github.com/medidonate/medidonate/internal/models"
)

const (
	DonorRegistrationName  = "donor_registration"
	DonationSubmissionName = "donation_submission"
	HospitalRequestName    = "hospital_request"
	ProcessRequestsName    = "process_requests"
)

const (
	MsgRegistered         = "Registration successful! You can now submit donations."
	MsgRegistrationFailed = "Registration failed"
	MsgDonationAccepted   = "Thank you! Your donation has been accepted and added to stock."
	MsgDonationRejected   = "Donation rejected"
	MsgSubmissionFailed   = "Submission failed"
	MsgRequestSubmitted   = "Request submitted successfully! It will be processed soon."
	MsgRequestFailed      = "Request submission failed"
	MsgProcessed          = "Requests processed successfully!"
	MsgProcessFailed      = "Failed to process requests"
)

// DonorRegistrar registers donors.
type DonorRegistrar interface {
	RegisterDonor(ctx context.Context, reg models.DonorRegistration) error
}

// DonationSubmitter submits donations for validation.
type DonationSubmitter interface {
	SubmitDonation(ctx context.Context, sub models.DonationSubmission) (models.DonationResult, error)
}

// RequestCreator files hospital requests.
type RequestCreator interface {
	CreateRequest(ctx context.Context, req models.RequestCreation) error
}

// NewDonorRegistration builds the donor registration workflow.
func NewDonorRegistration(c DonorRegistrar, opts ...Option) *Workflow[DonorFields] {
	send := func(ctx context.Context, f DonorFields) Outcome {
		if err := c.RegisterDonor(ctx, f.Payload()); err != nil {
			return Interpret(err, MsgRegistrationFailed)
		}
		return Success(MsgRegistered)
	}
	return New(DonorRegistrationName, DonorFields{}, send, opts...)
}

// NewDonationSubmission builds the donation workflow. A donation the
// service declines is a rejection, not a failure.
func NewDonationSubmission(c DonationSubmitter, opts ...Option) *Workflow[DonationFields] {
	send := func(ctx context.Context, f DonationFields) Outcome {
		payload, err := f.Payload()
		if err != nil {
			return Outcome{Kind: KindFailed, Message: MsgSubmissionFailed, Err: err}
		}

		result, err := c.SubmitDonation(ctx, payload)
		if err != nil {
			return Interpret(err, MsgSubmissionFailed)
		}

		if !result.Accepted() {
			return Rejected(RejectionMessage(result.RejectionReasons))
		}
		return Success(MsgDonationAccepted)
	}
	return New(DonationSubmissionName, NewDonationFields(), send, opts...)
}

// RejectionMessage formats the reasons a donation was declined.
func RejectionMessage(reasons models.Reasons) string {
	if len(reasons) == 0 {
		return MsgDonationRejected
	}
	return MsgDonationRejected + ": " + reasons.String()
}

// NewHospitalRequest builds the hospital request workflow.
func NewHospitalRequest(c RequestCreator, opts ...Option) *Workflow[RequestFields] {
	send := func(ctx context.Context, f RequestFields) Outcome {
		payload, err := f.Payload()
		if err != nil {
			return Outcome{Kind: KindFailed, Message: MsgRequestFailed, Err: err}
		}

		if err := c.CreateRequest(ctx, payload); err != nil {
			return Interpret(err, MsgRequestFailed)
		}
		return Success(MsgRequestSubmitted)
	}
	return New(HospitalRequestName, NewRequestFields(), send, opts...)
}
