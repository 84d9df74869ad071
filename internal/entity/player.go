package entity

// Player - a participant of one game. Passed by value and never mutated.
type Player struct {
	Name string `json:"name"`
	Mark Mark   `json:"mark"`
}

func NewPlayer(name string, mark Mark) Player {
	return Player{Name: name, Mark: mark}
}
