package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"github.com/marketplace-labs/briefdesk/pkg/usecase"
	"github.com/marketplace-labs/briefdesk/pkg/utils/logging"
)

type ctxBuyerKey struct{}

func withBuyer(ctx context.Context, buyer *model.Buyer) context.Context {
	return context.WithValue(ctx, ctxBuyerKey{}, buyer)
}

// BuyerFrom returns the authenticated buyer of a request, or nil
func BuyerFrom(ctx context.Context) *model.Buyer {
	buyer, _ := ctx.Value(ctxBuyerKey{}).(*model.Buyer)
	return buyer
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// authMiddleware resolves the buyer behind every request. Without an
// authenticator every request is rejected.
func authMiddleware(authUC usecase.AuthUseCaseInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authUC == nil {
				writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: "Authentication required"})
				return
			}

			token := bearerToken(r)
			if token == "" && !authUC.IsNoAuthn() {
				writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: "Authentication required"})
				return
			}

			buyer, err := authUC.Authenticate(r.Context(), token)
			if err != nil {
				handleError(w, r, err)
				return
			}

			ctx := withBuyer(r.Context(), buyer)
			ctx = logging.With(ctx, logging.From(ctx).With("buyer_id", buyer.ID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
