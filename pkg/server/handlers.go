package server

import (
	"Pointly/handler"
)

type Handlers struct {
	Auth  *handler.Auth
	Point *handler.Point
	Card  *handler.Card
	Task  *handler.Task
	Query *handler.Query
	User  *handler.User
}
