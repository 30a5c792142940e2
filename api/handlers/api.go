package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/studyhall/studyhall-api/api"
	"github.com/studyhall/studyhall-api/api/scheduler"
	"github.com/studyhall/studyhall-api/catalog"
	"github.com/studyhall/studyhall-api/config"
	"github.com/studyhall/studyhall-api/databases"
)

// validate checks request payloads against the struct tags in models
var validate = validator.New()

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// Initialize connects to the database, builds the router and starts the
// background scheduler
func (a *App) Initialize() {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		zap.S().Fatalw("failed to create mongo client", "error", err)
	}
	if err := client.Connect(); err != nil {
		zap.S().Fatalw("failed to connect to mongo", "error", err)
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	a.Router = a.New()

	a.Scheduler = scheduler.NewScheduler(
		databases.NewNotificationDatabase(a.dbHelper),
		databases.NewUserDatabase(a.dbHelper),
		a.Config.SendgridAPIKey,
		a.Config.SenderEmail,
	)
	a.Scheduler.Start()
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	m := api.MiddlewareDB{DB: databases.NewUserDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	// base router already carries the health route
	r := api.New()

	u := User{DB: databases.NewUserDatabase(a.dbHelper)}
	c := Classroom{DB: databases.NewClassroomDatabase(a.dbHelper), NDB: databases.NewNotificationDatabase(a.dbHelper)}
	course := Course{DB: databases.NewCourseDatabase(a.dbHelper), Catalog: catalog.New(a.Config.YouTubeAPIKey)}
	p := Progress{DB: databases.NewProgressDatabase(a.dbHelper)}
	act := Activity{DB: databases.NewActivityDatabase(a.dbHelper)}
	n := Notification{DB: databases.NewNotificationDatabase(a.dbHelper)}
	note := Note{DB: databases.NewNoteDatabase(a.dbHelper)}

	r.Use(api.TimeoutMiddleware(api.QueryTimeout))

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/user/{user_id}", api.Middleware(http.HandlerFunc(u.UserHandler))).Methods("GET")
	apiCreate.Handle("/user/{user_id}/role", api.Middleware(http.HandlerFunc(u.RoleHandler))).Methods("GET")
	apiCreate.Handle("/user/{user_id}/role", api.Middleware(http.HandlerFunc(u.SetRoleHandler))).Methods("PUT")
	apiCreate.Handle("/user/{user_id}/name", api.Middleware(http.HandlerFunc(u.UpdateNameHandler))).Methods("PUT")

	apiCreate.Handle("/classrooms", api.Middleware(http.HandlerFunc(c.ClassroomsHandler))).Methods("GET")
	apiCreate.Handle("/classroom", api.Middleware(http.HandlerFunc(c.CreateClassroomHandler))).Methods("POST")
	apiCreate.Handle("/classroom/{classroom_id}", api.Middleware(http.HandlerFunc(c.ClassroomByIDHandler))).Methods("GET")
	apiCreate.Handle("/classroom/{classroom_id}/students", api.Middleware(http.HandlerFunc(c.ClassroomStudentsHandler))).Methods("GET")
	apiCreate.Handle("/classroom/{classroom_id}/students", api.Middleware(http.HandlerFunc(c.EnrollStudentHandler))).Methods("POST")
	apiCreate.Handle("/classroom/{classroom_id}/announcements", api.Middleware(http.HandlerFunc(c.AddAnnouncementHandler))).Methods("POST")
	apiCreate.Handle("/classroom/{classroom_id}/assignments", api.Middleware(http.HandlerFunc(c.AddAssignmentHandler))).Methods("POST")
	apiCreate.Handle("/classroom/{classroom_id}/reference-notes", api.Middleware(http.HandlerFunc(c.AddReferenceNoteHandler))).Methods("POST")

	apiCreate.Handle("/course", api.Middleware(http.HandlerFunc(course.CreateCourseHandler))).Methods("POST")
	apiCreate.Handle("/courses/user/{user_id}", api.Middleware(http.HandlerFunc(course.CoursesByUserIDHandler))).Methods("GET")
	apiCreate.Handle("/course/{course_id}", api.Middleware(http.HandlerFunc(course.CourseByIDHandler))).Methods("GET")
	apiCreate.Handle("/course/{course_id}", api.Middleware(http.HandlerFunc(course.DeleteCourseHandler))).Methods("DELETE")

	apiCreate.Handle("/progress/{user_id}/{course_id}", api.Middleware(http.HandlerFunc(p.ProgressHandler))).Methods("GET")
	apiCreate.Handle("/progress/{user_id}/{course_id}", api.Middleware(http.HandlerFunc(p.UpdateProgressHandler))).Methods("PUT")

	apiCreate.Handle("/activity", api.Middleware(http.HandlerFunc(act.LogActivityHandler))).Methods("POST")
	apiCreate.Handle("/activity/{user_id}", api.Middleware(http.HandlerFunc(act.ActivityByUserIDHandler))).Methods("GET")
	apiCreate.Handle("/activity/{user_id}/heatmap", api.Middleware(http.HandlerFunc(act.HeatmapHandler))).Methods("GET")

	apiCreate.Handle("/users/{user_id}/notifications", api.Middleware(http.HandlerFunc(n.NotificationsByUserIDHandler))).Methods("GET")
	apiCreate.Handle("/users/{user_id}/notifications/unread-count", api.Middleware(http.HandlerFunc(n.UnreadCountHandler))).Methods("GET")
	apiCreate.Handle("/users/{user_id}/notifications/read-all", api.Middleware(http.HandlerFunc(n.MarkAllReadHandler))).Methods("PUT")
	apiCreate.Handle("/notifications/{notification_id}/read", api.Middleware(http.HandlerFunc(n.MarkReadHandler))).Methods("PUT")

	apiCreate.Handle("/notes/{user_id}/{course_id}/{video_id}", api.Middleware(http.HandlerFunc(note.NoteHandler))).Methods("GET")
	apiCreate.Handle("/notes/{user_id}/{course_id}/{video_id}", api.Middleware(http.HandlerFunc(note.SaveNoteHandler))).Methods("PUT")

	return r
}
