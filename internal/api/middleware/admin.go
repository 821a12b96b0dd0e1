package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
)

const msgNotAdmin = "требуются права администратора"

// AdminChecker проверяет наличие административных прав у пользователя
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// AdminLogger минимальный интерфейс логирования для middleware
type AdminLogger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Admin пропускает только пользователей из таблицы администраторов.
// Проверка выполняется один раз на запрос; навешивается после Auth.
func Admin(checker AdminChecker, logger AdminLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			isAdmin, err := checker.IsAdmin(r.Context(), userID)
			if err != nil {
				logger.Error("Admin middleware: failed to check admin rights for user_id=%d: %v", userID, err)
				handlers.RespondInternalError(w)
				return
			}

			if !isAdmin {
				logger.Warn("Admin middleware: access denied for user_id=%d", userID)
				handlers.RespondForbidden(w, msgNotAdmin)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
