package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"clinic-api/pkg/response"

	"github.com/sirupsen/logrus"
)

type Recovery struct {
	log *logrus.Logger
}

func NewRecovery(log *logrus.Logger) *Recovery {
	return &Recovery{log: log}
}

// Handle turns a panic into the standard transaction-failed response.
func (m *Recovery) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				requestID, _ := GetRequestIDFromContext(r.Context())
				m.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"panic":      fmt.Sprintf("%v", rec),
					"stack":      string(debug.Stack()),
				}).Error("panic recovered")

				response.TransactionFailed(w, fmt.Errorf("%v", rec))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
