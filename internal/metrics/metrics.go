package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Signins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_signins_total",
		Help: "Sign-in attempts by result",
	}, []string{"result"})

	Signups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_signups_total",
		Help: "Sign-up attempts by result",
	}, []string{"result"})

	ResetRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_reset_requests_total",
		Help: "Password reset requests by result",
	}, []string{"result"})

	ResetConsumptions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_reset_consumptions_total",
		Help: "Password reset consumptions by result",
	}, []string{"result"})

	CartUpserts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_upserts_total",
		Help: "Cart line-item upserts by result",
	}, []string{"result"})
)

func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
