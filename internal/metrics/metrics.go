// Package metrics holds the Prometheus collectors of the vault daemon.
package metrics

const namespace = "multisigvault"

var operationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
