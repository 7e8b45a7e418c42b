package ports

import (
	"context"

	"github.com/learnhub/learnhub-client/internal/core/domain"
)

// APIClient is the outbound interface to the remote LearnHub API.
//
// Every call resolves to an envelope: transport failures are converted to
// failure envelopes, never surfaced as errors. The error return is reserved
// for the loud cases: a payload that cannot be validated against the envelope
// shape (domain.ErrMalformedResponse) and a 401 from the remote
// (domain.ErrAuthorizationExpired).
type APIClient interface {
	Login(ctx context.Context, creds domain.Credentials) (domain.Envelope[domain.LoginResult], error)
	Register(ctx context.Context, data domain.RegisterData) (domain.Envelope[domain.User], error)
	Logout(ctx context.Context) (domain.Envelope[domain.Empty], error)
	GetCurrentUser(ctx context.Context) (domain.Envelope[domain.User], error)
	GetCourses(ctx context.Context, filter domain.CourseFilter) (domain.Envelope[domain.CourseList], error)
	GetCourse(ctx context.Context, id int) (domain.Envelope[domain.Course], error)
}
