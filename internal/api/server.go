package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"eduverse/internal/notify"
	"eduverse/pkg/interfaces"
	"eduverse/pkg/types"
)

// Server is the HTTP surface consumed by collaborators: the rendezvous
// hand-off, the collaborator event endpoints and a health check. No business
// logic lives here, only HTTP handling and JSON serialization.
type Server struct {
	store    interfaces.RendezvousStore
	notifier *notify.Service
	layer    interfaces.ChannelLayer
	router   *mux.Router
}

// NewServer creates the API server and mounts its routes.
func NewServer(store interfaces.RendezvousStore, notifier *notify.Service, layer interfaces.ChannelLayer) *Server {
	s := &Server{
		store:    store,
		notifier: notifier,
		layer:    layer,
		router:   mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.corsMiddleware, s.jsonMiddleware)

	s.router.HandleFunc("/store_info", s.storeInfo).Methods(http.MethodPost, http.MethodOptions)
	s.router.HandleFunc("/get_info", s.getInfo).Methods(http.MethodGet, http.MethodOptions)
	s.router.HandleFunc("/health", s.healthCheck).Methods(http.MethodGet, http.MethodOptions)

	s.router.HandleFunc("/api/events/enrollment", s.publishEnrollment).Methods(http.MethodPost, http.MethodOptions)
	s.router.HandleFunc("/api/events/removal", s.publishRemoval).Methods(http.MethodPost, http.MethodOptions)
	s.router.HandleFunc("/api/events/material", s.publishMaterial).Methods(http.MethodPost, http.MethodOptions)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Request/Response types for JSON serialization
type storeInfoRequest struct {
	RoomID *string `json:"room_id"`
}

type storeInfoResponse struct {
	Status string `json:"status"`
	RoomID string `json:"room_id"`
}

type getInfoResponse struct {
	RoomID string `json:"room_id"`
}

type enrollmentRequest struct {
	TeacherID            string  `json:"teacher_id"`
	StudentName          *string `json:"student_name"`
	CourseName           *string `json:"course_name"`
	EnrolledStudentCount int     `json:"enrolled_student_count"`
	CourseID             int64   `json:"course_id"`
}

type removalRequest struct {
	StudentID string `json:"student_id"`
	CourseID  string `json:"course_id"`
}

type materialRequest struct {
	CourseID   string   `json:"course_id"`
	CourseName *string  `json:"course_name"`
	StudentIDs []string `json:"student_ids"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status      string         `json:"status"`
	Timestamp   time.Time      `json:"timestamp"`
	Rendezvous  string         `json:"rendezvous"`
	Connections map[string]int `json:"connections"`
}

// storeInfo handles POST /store_info: the initiating client deposits the chat
// room ID for the second client to pick up. The slot is overwritten
// unconditionally.
func (s *Server) storeInfo(w http.ResponseWriter, r *http.Request) {
	var req storeInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RoomID == nil {
		s.sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := s.store.Store(r.Context(), *req.RoomID); err != nil {
		log.Printf("api: failed to store room ID: %v", err)
		s.sendError(w, "Failed to store room ID", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(storeInfoResponse{Status: "success", RoomID: *req.RoomID})
}

// getInfo handles GET /get_info: the second client reads the deposited room
// ID. The slot is read, not consumed.
func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	roomID, err := s.store.Fetch(r.Context())
	if errors.Is(err, interfaces.ErrRoomIDNotFound) {
		s.sendError(w, "Room ID not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("api: failed to fetch room ID: %v", err)
		s.sendError(w, "Failed to fetch room ID", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(getInfoResponse{RoomID: roomID})
}

// publishEnrollment handles POST /api/events/enrollment, called by the
// enrollment view after it creates the enrollment record.
func (s *Server) publishEnrollment(w http.ResponseWriter, r *http.Request) {
	var req enrollmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.TeacherID == "" {
		s.sendError(w, "teacher_id is required", http.StatusBadRequest)
		return
	}

	ev := types.StudentEnrolledEvent{
		StudentName:          req.StudentName,
		CourseName:           req.CourseName,
		EnrolledStudentCount: req.EnrolledStudentCount,
		CourseID:             req.CourseID,
	}
	if err := s.notifier.StudentEnrolled(r.Context(), req.TeacherID, ev); err != nil {
		log.Printf("api: enrollment event not published: %v", err)
		s.sendError(w, "Failed to publish event", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(statusResponse{Status: "published"})
}

// publishRemoval handles POST /api/events/removal, called by the removal view
// after it deletes the enrollment record.
func (s *Server) publishRemoval(w http.ResponseWriter, r *http.Request) {
	var req removalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.StudentID == "" || req.CourseID == "" {
		s.sendError(w, "student_id and course_id are required", http.StatusBadRequest)
		return
	}

	ev := types.StudentRemovedEvent{StudentID: req.StudentID, CourseID: req.CourseID}
	if err := s.notifier.StudentRemoved(r.Context(), ev); err != nil {
		log.Printf("api: removal event not published: %v", err)
		s.sendError(w, "Failed to publish event", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(statusResponse{Status: "published"})
}

// publishMaterial handles POST /api/events/material, called by the material
// upload view. The event fans out to the course group and to every enrolled
// student's group.
func (s *Server) publishMaterial(w http.ResponseWriter, r *http.Request) {
	var req materialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.CourseID == "" {
		s.sendError(w, "course_id is required", http.StatusBadRequest)
		return
	}

	courseID, err := parseCourseID(req.CourseID)
	if err != nil {
		s.sendError(w, "course_id must be numeric", http.StatusBadRequest)
		return
	}

	ev := types.UpdateMaterialEvent{
		CourseName: req.CourseName,
		CourseID:   &courseID,
	}
	if err := s.notifier.MaterialUpdated(r.Context(), req.CourseID, req.StudentIDs, ev); err != nil {
		log.Printf("api: material event not published: %v", err)
		s.sendError(w, "Failed to publish event", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(statusResponse{Status: "published"})
}

// healthCheck handles GET /health.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	rendezvousStatus := "up"
	if _, err := s.store.Fetch(r.Context()); err != nil && !errors.Is(err, interfaces.ErrRoomIDNotFound) {
		rendezvousStatus = "down"
	}

	json.NewEncoder(w).Encode(healthResponse{
		Status:      "ok",
		Timestamp:   time.Now().UTC(),
		Rendezvous:  rendezvousStatus,
		Connections: s.layer.Stats(),
	})
}

func parseCourseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func (s *Server) sendError(w http.ResponseWriter, message string, code int) {
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(errorResponse{Error: message})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
