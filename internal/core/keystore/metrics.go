package keystore

import "github.com/prometheus/client_golang/prometheus"

// Prometheus 指标：观测签名、密钥写入与持久化失败
var (
	keystoreSignTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "custody_keystore_sign_total",
		Help: "Total number of keystore Sign calls by backend and result.",
	}, []string{"backend", "result"})
	keystoreKeysAdded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "custody_keystore_keys_added_total",
		Help: "Total number of keys stored through the keystore by backend.",
	}, []string{"backend"})
	keystoreSaveFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "custody_keystore_save_failures_total",
		Help: "Total number of failed keystore file writes.",
	})
)

func init() {
	prometheus.MustRegister(
		keystoreSignTotal,
		keystoreKeysAdded,
		keystoreSaveFailures,
	)
}

const (
	signResultOK       = "ok"
	signResultNotFound = "not_found"
	signResultError    = "error"
)

// backendLabel 指标中的后端名称
func backendLabel(backend AccountKeystore) string {
	switch backend.(type) {
	case *FileBasedKeystore:
		return "file"
	case *InMemKeystore:
		return "memory"
	default:
		return "custom"
	}
}
