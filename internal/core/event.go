package core

import "github.com/google/uuid"

// EventKind различает запросы, результаты и ошибки.
type EventKind string

const (
	KindInput  EventKind = "input"
	KindOutput EventKind = "output"
	KindError  EventKind = "error"
)

// Event единственная единица обмена между консолью и воркером.
type Event struct {
	ID      string    `json:"id"`
	Kind    EventKind `json:"kind"`
	Command Command   `json:"command"`
	Payload string    `json:"payload"`
}

// NewRequest создает запрос с новым идентификатором.
func NewRequest(cmd Command, payload string) Event {
	return Event{
		ID:      uuid.NewString(),
		Kind:    KindInput,
		Command: cmd,
		Payload: payload,
	}
}

// Reply строит ответ на запрос, сохраняя ID и команду.
func (e Event) Reply(payload string, err error) Event {
	resp := Event{ID: e.ID, Kind: KindOutput, Command: e.Command, Payload: payload}
	if err != nil {
		resp.Kind = KindError
		resp.Payload = err.Error()
	}
	return resp
}

// Link связывает консоль и воркер двумя однонаправленными очередями.
type Link struct {
	Requests  chan Event
	Responses chan Event
}

// NewLink создает небуферизованный дуплексный канал.
func NewLink() *Link {
	return &Link{
		Requests:  make(chan Event),
		Responses: make(chan Event),
	}
}
