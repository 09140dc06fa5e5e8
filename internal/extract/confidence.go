package extract

// Fusion weights. Amount dominates because it is the field most
// consequential to an erroneously auto-booked transaction.
const (
	amountWeight   = 0.4
	dateWeight     = 0.3
	categoryWeight = 0.2
	vendorWeight   = 0.1
)

// Fuse combines per-field confidences into an overall score.
func Fuse(amountConf, dateConf, categoryConf, vendorConf float64) float64 {
	return amountWeight*amountConf +
		dateWeight*dateConf +
		categoryWeight*categoryConf +
		vendorWeight*vendorConf
}
