package model

// 金额统一以分(int64)存储，税率以基点(1/10000)存储，如 550 = 5.5%

// SplitVAT 含税金额拆分为不含税金额与税额（四舍五入到分）
func SplitVAT(ttc int64, rateBP int) (ht int64, vat int64) {
	if rateBP <= 0 {
		return ttc, 0
	}
	den := int64(10000 + rateBP)
	ht = (ttc*10000*2 + den) / (2 * den)
	return ht, ttc - ht
}

// VATOnHT 不含税金额对应的税额
func VATOnHT(ht int64, rateBP int) int64 {
	if rateBP <= 0 {
		return 0
	}
	return (ht*int64(rateBP)*2 + 10000) / 20000
}

// PercentOf 计算 amount 的 pct%（四舍五入）
func PercentOf(amount int64, pct int) int64 {
	if pct <= 0 {
		return 0
	}
	return (amount*int64(pct)*2 + 100) / 200
}

// CentsToFloat 分转元，用于导出与展示
func CentsToFloat(cents int64) float64 {
	return float64(cents) / 100
}
