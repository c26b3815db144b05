package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/campuslink/internal/app/controllers"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/middleware"
	"github.com/yigit/campuslink/internal/pkg/websocket"
)

// Controllers groups every controller the router mounts
type Controllers struct {
	Health       *controllers.HealthController
	Auth         *controllers.AuthController
	Department   *controllers.DepartmentController
	Teacher      *controllers.TeacherController
	Student      *controllers.StudentController
	Paper        *controllers.PaperController
	TimeSchedule *controllers.TimeScheduleController
	Internal     *controllers.InternalController
	Announcement *controllers.AnnouncementController
	Live         *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// Health check endpoint (public)
	v1.GET("/health", ctrl.Health.Health)

	// --- Public Auth routes ---
	v1.POST("/auth/login/:role", ctrl.Auth.Login)

	// Live announcement feed; the token may travel in the query string
	v1.GET("/announcements/live",
		middleware.QueryToken("token"),
		authMiddleware.JWTAuth(),
		ctrl.Live.HandleConnection(middleware.ContextUserID, middleware.ContextRole),
	)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	admin := authMiddleware.RoleRequired(models.RoleAdmin)
	staff := authMiddleware.RoleRequired(models.RoleAdmin, models.RoleTeacher)
	id := middleware.UUIDParams("id")

	departments := authenticated.Group("/departments")
	{
		departments.GET("", ctrl.Department.GetAllDepartments)
		departments.GET("/extra/count", ctrl.Department.CountDepartments)
		departments.GET("/:id", id, ctrl.Department.GetDepartment)
		departments.POST("", admin, ctrl.Department.CreateDepartment)
		departments.PATCH("/:id", admin, id, ctrl.Department.UpdateDepartment)
		departments.DELETE("/:id", admin, id, ctrl.Department.DeleteDepartment)
	}

	semesters := authenticated.Group("/semesters")
	{
		deptID := middleware.UUIDParams("deptId")
		semesters.GET("/:id", id, ctrl.Department.GetSemester)
		semesters.GET("/dept/:deptId", deptID, ctrl.Department.GetSemestersByDepartment)
		semesters.GET("/dept/:deptId/:semnum", deptID, ctrl.Department.FindSemester)
	}

	teachers := authenticated.Group("/teachers")
	{
		teachers.GET("", ctrl.Teacher.GetAllTeachers)
		teachers.GET("/extra/count", ctrl.Teacher.CountTeachers)
		teachers.GET("/:id", id, ctrl.Teacher.GetTeacher)
		teachers.POST("", admin, ctrl.Teacher.CreateTeacher)
		teachers.PATCH("/:id", admin, id, ctrl.Teacher.UpdateTeacher)
		teachers.DELETE("/:id", admin, id, ctrl.Teacher.DeleteTeacher)
	}

	students := authenticated.Group("/students")
	{
		students.GET("", ctrl.Student.GetAllStudents)
		students.GET("/extra/count", ctrl.Student.CountStudents)
		students.GET("/:id", id, ctrl.Student.GetStudent)
		students.POST("", admin, ctrl.Student.CreateStudent)
		students.PATCH("/:id", admin, id, ctrl.Student.UpdateStudent)
		students.DELETE("/:id", admin, id, ctrl.Student.DeleteStudent)
	}

	papers := authenticated.Group("/papers")
	{
		papers.GET("", ctrl.Paper.GetAllPapers)
		papers.GET("/extra/count", ctrl.Paper.CountPapers)
		papers.GET("/department/:departmentId", middleware.UUIDParams("departmentId"), ctrl.Paper.GetPapersByDepartment)
		papers.GET("/semester/:semesterId", middleware.UUIDParams("semesterId"), ctrl.Paper.GetPapersBySemester)
		papers.GET("/:id", id, ctrl.Paper.GetPaper)
		papers.GET("/:id/students", id, ctrl.Paper.GetStudentsInPaper)
		papers.POST("", admin, ctrl.Paper.CreatePaper)
		papers.PATCH("/:id", admin, id, ctrl.Paper.UpdatePaper)
		papers.DELETE("/:id", admin, id, ctrl.Paper.DeletePaper)
	}

	schedules := authenticated.Group("/time-schedules")
	{
		semesterID := middleware.UUIDParams("semesterId")
		schedules.GET("/:semesterId", semesterID, ctrl.TimeSchedule.GetTimeSchedule)
		schedules.POST("", staff, ctrl.TimeSchedule.CreateTimeSchedule)
		schedules.PATCH("/:semesterId", staff, semesterID, ctrl.TimeSchedule.PatchTimeSchedule)
		schedules.DELETE("/:semesterId", staff, semesterID, ctrl.TimeSchedule.DeleteTimeSchedule)
	}

	internals := authenticated.Group("/internals")
	{
		paperID := middleware.UUIDParams("paperId")
		internals.GET("/student/:studentId", middleware.UUIDParams("studentId"), ctrl.Internal.GetInternalsByStudent)
		internals.GET("/:paperId", paperID, ctrl.Internal.GetInternalByPaper)
		internals.POST("/:paperId", staff, paperID, ctrl.Internal.CreateInternal)
		internals.PATCH("/:paperId", staff, paperID, ctrl.Internal.ReplaceInternalMarks)
		internals.DELETE("/:paperId", staff, paperID, ctrl.Internal.DeleteInternal)
	}

	announcements := authenticated.Group("/announcements")
	{
		announcements.GET("", ctrl.Announcement.GetAnnouncements)
		announcements.POST("", staff, ctrl.Announcement.CreateAnnouncement)
		announcements.PATCH("/:id", staff, id, ctrl.Announcement.UpdateAnnouncement)
		announcements.DELETE("/:id", staff, id, ctrl.Announcement.DeleteAnnouncement)
	}

	admins := authenticated.Group("/admins", admin)
	{
		admins.POST("", ctrl.Auth.CreateAdmin)
		admins.GET("/:id", id, ctrl.Auth.GetAdmin)
		admins.PATCH("/:id", id, ctrl.Auth.UpdateAdmin)
		admins.DELETE("/:id", id, ctrl.Auth.DeleteAdmin)
	}
}
