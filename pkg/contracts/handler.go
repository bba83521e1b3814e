package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every HTTP surface the application mounts.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
