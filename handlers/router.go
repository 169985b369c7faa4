package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router groups the handlers served by NewRouter.
type Router struct {
	Users       *UserHandler
	Authorities *AuthorityHandler
	Departments *DepartmentHandler
	Projects    *ProjectHandler
	Tasks       *TaskHandler
	Comments    *CommentHandler
	Attachments *AttachmentHandler
}

// NewRouter registers every route. Routes other than login, registration and
// health go through auth.
func NewRouter(h Router, auth func(http.Handler) http.Handler) *mux.Router {
	r := mux.NewRouter()
	secured := func(fn http.HandlerFunc) http.Handler { return auth(fn) }

	r.HandleFunc("/health", Health).Methods(http.MethodGet)
	r.HandleFunc("/users/token", h.Users.Login).Methods(http.MethodPost)
	r.HandleFunc("/users", h.Users.CreateUser).Methods(http.MethodPost)

	r.Handle("/users", secured(h.Users.ListUsers)).Methods(http.MethodGet)
	r.Handle("/users/{id}", secured(h.Users.GetUser)).Methods(http.MethodGet)
	r.Handle("/users/{id}", secured(h.Users.UpdateUser)).Methods(http.MethodPut)
	r.Handle("/users/{id}", secured(h.Users.DeleteUser)).Methods(http.MethodDelete)
	r.Handle("/users/{id}/tasks", secured(h.Tasks.TasksByUser)).Methods(http.MethodGet)

	r.Handle("/authorities", secured(h.Authorities.CreateAuthority)).Methods(http.MethodPost)
	r.Handle("/authorities/{id}", secured(h.Authorities.GetAuthority)).Methods(http.MethodGet)
	r.Handle("/authorities/{id}", secured(h.Authorities.UpdateAuthority)).Methods(http.MethodPut)
	r.Handle("/authorities/{id}", secured(h.Authorities.DeleteAuthority)).Methods(http.MethodDelete)

	r.Handle("/departments", secured(h.Departments.CreateDepartment)).Methods(http.MethodPost)
	r.Handle("/departments/{id}", secured(h.Departments.GetDepartment)).Methods(http.MethodGet)
	r.Handle("/departments/{id}", secured(h.Departments.UpdateDepartment)).Methods(http.MethodPut)
	r.Handle("/departments/{id}", secured(h.Departments.DeleteDepartment)).Methods(http.MethodDelete)
	r.Handle("/departments/{id}/projects", secured(h.Departments.DepartmentProjects)).Methods(http.MethodGet)
	r.Handle("/departments/{id}/users", secured(h.Departments.DepartmentUsers)).Methods(http.MethodGet)

	r.Handle("/projects", secured(h.Projects.CreateProject)).Methods(http.MethodPost)
	r.Handle("/projects/{id}", secured(h.Projects.GetProject)).Methods(http.MethodGet)
	r.Handle("/projects/{id}", secured(h.Projects.UpdateProject)).Methods(http.MethodPut)
	r.Handle("/projects/{id}", secured(h.Projects.DeleteProject)).Methods(http.MethodDelete)
	r.Handle("/projects/{id}/tasks", secured(h.Tasks.TasksByProject)).Methods(http.MethodGet)

	r.Handle("/tasks/create", secured(h.Tasks.CreateTask)).Methods(http.MethodPost)
	r.Handle("/tasks/{id}", secured(h.Tasks.GetTask)).Methods(http.MethodGet)
	r.Handle("/tasks/{id}", secured(h.Tasks.UpdateTask)).Methods(http.MethodPut)
	r.Handle("/tasks/{id}", secured(h.Tasks.DeleteTask)).Methods(http.MethodDelete)
	r.Handle("/tasks/{id}/assign/{userId}", secured(h.Tasks.AssignTask)).Methods(http.MethodPost)
	r.Handle("/tasks/{id}/activity", secured(h.Tasks.TaskActivity)).Methods(http.MethodGet)

	r.Handle("/comments", secured(h.Comments.CreateComment)).Methods(http.MethodPost)
	r.Handle("/comments/{id}", secured(h.Comments.GetComment)).Methods(http.MethodGet)
	r.Handle("/comments/{id}", secured(h.Comments.UpdateComment)).Methods(http.MethodPut)
	r.Handle("/comments/{id}", secured(h.Comments.DeleteComment)).Methods(http.MethodDelete)

	r.Handle("/attachments/upload", secured(h.Attachments.UploadFiles)).Methods(http.MethodPost)
	r.Handle("/attachments/{id}", secured(h.Attachments.GetFile)).Methods(http.MethodGet)
	r.Handle("/attachments/{id}", secured(h.Attachments.UpdateFile)).Methods(http.MethodPost)
	r.Handle("/attachments/{id}", secured(h.Attachments.DeleteFile)).Methods(http.MethodDelete)

	return r
}
