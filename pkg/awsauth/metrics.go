package awsauth

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	leaseExchanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cloud_catalog_credential_exchanges_total",
			Help: "Total number of assume-role exchanges against STS",
		},
		[]string{"account", "status"},
	)

	leaseCacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cloud_catalog_lease_cache_hits_total",
			Help: "Total number of lease resolutions served from the cache",
		},
		[]string{"account"},
	)
)

func init() {
	prometheus.MustRegister(leaseExchanges)
	prometheus.MustRegister(leaseCacheHits)
}
