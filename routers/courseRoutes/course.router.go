package courseRoutes

import (
	controllers "learnhub/controllers/course"
	"learnhub/middleware"
	validators "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public catalog and the student-facing
// learning routes.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Public catalog
	courseGroup.Get("/list", controllers.GetAllCourses)
	courseGroup.Get("/:courseId", validators.CourseID(), controllers.GetCourseDetails)

	// Enrolled learning flow
	courseGroup.Get("/:courseId/learn", middleware.JWTMiddleware, validators.CourseID(), controllers.GetStudentCourse)
	courseGroup.Get("/:courseId/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.GetProgress)
	courseGroup.Post("/:courseId/lecture/:lectureId/quiz", middleware.JWTMiddleware, validators.CourseID(), validators.LectureID(), validators.SubmitQuiz(), controllers.SubmitLectureQuiz)
	courseGroup.Get("/:courseId/final-quiz", middleware.JWTMiddleware, validators.CourseID(), controllers.GetFinalQuizForStudent)
	courseGroup.Post("/:courseId/final-quiz", middleware.JWTMiddleware, validators.CourseID(), validators.SubmitQuiz(), controllers.SubmitFinalQuiz)

	// Certificates
	certGroup := app.Group("/certificate")
	certGroup.Get("/my", middleware.JWTMiddleware, controllers.GetMyCertificates)
	certGroup.Get("/verify/:certificateNumber", validators.CertificateNumber(), controllers.VerifyCertificate)
	certGroup.Post("/:certificateNumber/revoke", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), validators.CertificateNumber(), controllers.RevokeCertificate)
}

// SetupInstructorCourseRoutes sets up course authoring routes
func SetupInstructorCourseRoutes(app *fiber.App) {
	instructorGroup := app.Group("/instructor/course",
		middleware.JWTMiddleware, middleware.RequireRole("INSTRUCTOR", "ADMIN"))

	instructorGroup.Post("/create", validators.CreateCourse(), controllers.CreateCourse)
	instructorGroup.Post("/:courseId/publish", validators.CourseID(), controllers.PublishCourse)
	instructorGroup.Post("/:courseId/lecture", validators.CourseID(), validators.CreateLecture(), controllers.CreateLecture)
	instructorGroup.Post("/:courseId/final-quiz", validators.CourseID(), validators.CreateFinalQuiz(), controllers.CreateFinalQuiz)
	instructorGroup.Get("/:courseId/final-quiz", validators.CourseID(), controllers.GetFinalQuiz)
}
