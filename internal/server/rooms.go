package server

import (
	"sync"
	"time"
)

// RoomState is a point-in-time view of a room.
type RoomState struct {
	ID           string    `json:"id"`
	Members      int       `json:"members"`
	Mood         string    `json:"mood,omitempty"`
	MessageCount int64     `json:"messageCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// room is one member set. Its mutex serializes membership changes and
// fan-out for the room.
type room struct {
	mu           sync.Mutex
	id           string
	members      map[string]*Client
	mood         string
	messageCount int64
	createdAt    time.Time
	deleted      bool
}

func (r *room) stateLocked() RoomState {
	return RoomState{
		ID:           r.id,
		Members:      len(r.members),
		Mood:         r.mood,
		MessageCount: r.messageCount,
		CreatedAt:    r.createdAt,
	}
}

// Directory maps room identifiers to member sets. Rooms are created on first
// join and deleted when their last member leaves. The directory lock is always
// taken before a room lock.
type Directory struct {
	name     string
	mu       sync.RWMutex
	rooms    map[string]*room
	onDelete func(roomID string)
	now      func() time.Time
}

// NewDirectory creates an empty directory. onDelete, if non-nil, runs after a
// room is deleted, outside any lock.
func NewDirectory(name string, onDelete func(roomID string)) *Directory {
	return &Directory{
		name:     name,
		rooms:    make(map[string]*room),
		onDelete: onDelete,
		now:      time.Now,
	}
}

// Join adds c to roomID, creating the room with mood as its label when it
// does not exist yet. Joining twice is a no-op for the member set.
func (d *Directory) Join(roomID string, c *Client, mood string) RoomState {
	d.mu.Lock()
	defer d.mu.Unlock()

	r, ok := d.rooms[roomID]
	if !ok {
		r = &room{
			id:        roomID,
			members:   make(map[string]*Client),
			mood:      mood,
			createdAt: d.now().UTC(),
		}
		d.rooms[roomID] = r
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[c.id] = c
	return r.stateLocked()
}

// Leave removes connID from roomID and deletes the room once it is empty.
// deleted reports whether this call removed the room. Unknown rooms and
// members are ignored.
func (d *Directory) Leave(roomID, connID string) (state RoomState, deleted bool) {
	d.mu.Lock()
	r, ok := d.rooms[roomID]
	if !ok {
		d.mu.Unlock()
		return RoomState{}, false
	}

	r.mu.Lock()
	delete(r.members, connID)
	if len(r.members) == 0 {
		r.deleted = true
		delete(d.rooms, roomID)
		deleted = true
	}
	state = r.stateLocked()
	r.mu.Unlock()
	d.mu.Unlock()

	if deleted && d.onDelete != nil {
		d.onDelete(roomID)
	}
	return state, deleted
}

// Get returns the current state of roomID.
func (d *Directory) Get(roomID string) (RoomState, bool) {
	r := d.lookup(roomID)
	if r == nil {
		return RoomState{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleted {
		return RoomState{}, false
	}
	return r.stateLocked(), true
}

// Contains reports whether connID is a member of roomID.
func (d *Directory) Contains(roomID, connID string) bool {
	var ok bool
	d.withRoom(roomID, func(r *room) {
		_, ok = r.members[connID]
	})
	return ok
}

// RecordMessage bumps the informational message counter of roomID.
func (d *Directory) RecordMessage(roomID string) {
	d.withRoom(roomID, func(r *room) {
		r.messageCount++
	})
}

// Len returns the number of live rooms.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.rooms)
}

func (d *Directory) lookup(roomID string) *room {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.rooms[roomID]
}

// withRoom runs fn under the room lock. It reports false, without calling fn,
// when the room does not exist.
func (d *Directory) withRoom(roomID string, fn func(r *room)) bool {
	r := d.lookup(roomID)
	if r == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleted {
		return false
	}
	fn(r)
	return true
}

// clear drops every room without running onDelete.
func (d *Directory) clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for id, r := range d.rooms {
		r.mu.Lock()
		r.deleted = true
		r.mu.Unlock()
		delete(d.rooms, id)
	}
}
