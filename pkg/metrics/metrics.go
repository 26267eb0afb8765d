package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BalanceSourceTotal counts balance resolutions by the tier that won.
	BalanceSourceTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "btc_balance_source_total",
		Help: "Balance resolutions grouped by the data source that answered",
	}, []string{"source"})

	// ProviderErrorsTotal counts failed calls against the custody provider.
	ProviderErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bitnob_request_errors_total",
		Help: "Failed Bitnob API calls grouped by endpoint",
	}, []string{"endpoint"})

	// AddressesGeneratedTotal counts generated addresses by type.
	AddressesGeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "btc_addresses_generated_total",
		Help: "Generated addresses grouped by address type",
	}, []string{"address_type"})
)
