package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"collab-hub/internal/hub"
	"collab-hub/internal/store"
	"collab-hub/pkg/auth"
)

// RoomsAPI serves room metadata CRUD. Live room state (cursors, chat)
// is the hub's business; this only persists the records and announces
// new rooms through the hub.
type RoomsAPI struct {
	DB  *store.Postgres
	Hub *hub.Hub
}

type createRoomReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatorName string `json:"creatorName"`
	Private     bool   `json:"isPrivate"`
	Password    string `json:"password"`
	Color       string `json:"color"`
	ImageURL    string `json:"imageUrl"`
}

type roomResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorName string    `json:"creatorName"`
	Private     bool      `json:"isPrivate"`
	Color       string    `json:"color"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type roomListResponse struct {
	Rooms      []roomResponse `json:"rooms"`
	Pagination pagination     `json:"pagination"`
}

type pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

func toRoomResponse(r store.Room) roomResponse {
	// Password hash never leaves the store layer
	return roomResponse{
		ID: r.ID, Name: r.Name, Description: r.Description,
		CreatorName: r.CreatorName, Private: r.Private, Color: r.Color,
		ImageURL: r.ImageURL, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

// Create persists a new room and announces it to connected clients.
func (a *RoomsAPI) Create(w http.ResponseWriter, r *http.Request) {
	var req createRoomReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "room name is required", http.StatusBadRequest)
		return
	}
	if req.Color == "" {
		req.Color = "#10b981"
	}

	uid := auth.UserID(r.Context())
	room, err := a.DB.CreateRoom(r.Context(), store.NewRoomParams{
		Name:        req.Name,
		Description: req.Description,
		CreatorID:   uid,
		CreatorName: req.CreatorName,
		Private:     req.Private,
		Password:    req.Password,
		Color:       req.Color,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Best effort, room creation stands even if the announce fails
	_ = a.Hub.AnnounceRoom(r.Context(), hub.RoomAnnouncement{
		ID:          room.ID,
		Name:        room.Name,
		Description: room.Description,
		CreatorName: room.CreatorName,
		Private:     room.Private,
		Color:       room.Color,
		ImageURL:    room.ImageURL,
		CreatedAt:   room.CreatedAt,
	})

	writeJSON(w, toRoomResponse(room))
}

// List returns rooms with page/limit pagination.
func (a *RoomsAPI) List(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	page := queryInt(r, "page", 1)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}

	rooms, total, err := a.DB.ListRooms(r.Context(), limit, (page-1)*limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := roomListResponse{
		Rooms: make([]roomResponse, 0, len(rooms)),
		Pagination: pagination{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: (total + limit - 1) / limit,
		},
	}
	for _, room := range rooms {
		resp.Rooms = append(resp.Rooms, toRoomResponse(room))
	}
	writeJSON(w, resp)
}

// Get fetches one room record by id.
func (a *RoomsAPI) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "id required", http.StatusBadRequest)
		return
	}

	room, err := a.DB.GetRoom(r.Context(), id)
	if errors.Is(err, store.ErrRoomNotFound) {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, toRoomResponse(room))
}

// Delete removes a room record; only the creator may delete.
func (a *RoomsAPI) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "id required", http.StatusBadRequest)
		return
	}

	uid := auth.UserID(r.Context())
	err := a.DB.DeleteRoom(r.Context(), id, uid)
	if errors.Is(err, store.ErrRoomNotFound) {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// queryInt parses an int query param with a fallback
func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
