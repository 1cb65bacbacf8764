package commands

import (
	"github.com/datahuba/kyc-client/internal/services"
	"github.com/datahuba/kyc-client/internal/session"
)

// App bundles the constructed session store and entity services for the
// command tree.
type App struct {
	Session     *session.Store
	Courses     *services.CourseService
	Students    *services.StudentService
	Payments    *services.PaymentService
	Enrollments *services.EnrollmentService
	Discounts   *services.DiscountService
	Users       *services.UserService
}
