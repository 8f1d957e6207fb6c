package service

// OneRmEstimate 某一组的极限重量估算结果
type OneRmEstimate struct {
	Value    float64 `json:"value"`
	SetIndex int     `json:"setIndex"`
}

// usableLength 平行数组的可用长度
func usableLength(reps []int, weights []float64) int {
	n := len(reps)
	if len(weights) < n {
		n = len(weights)
	}
	return n
}

// BestEstimatedOneRm 按 Epley 公式 weight*(1+reps/30) 估算各组极限重量,
// 返回最大估算值及其组下标; 相同取下标最小的一组。没有任何有效组
// (reps>0 且 weight>0) 时 ok 为 false。无效的组直接跳过, 不报错。
func BestEstimatedOneRm(reps []int, weights []float64) (OneRmEstimate, bool) {
	best := OneRmEstimate{}
	found := false
	n := usableLength(reps, weights)
	for i := 0; i < n; i++ {
		if reps[i] <= 0 || weights[i] <= 0 {
			continue
		}
		estimate := weights[i] * (1 + float64(reps[i])/30.0)
		if !found || estimate > best.Value {
			best = OneRmEstimate{Value: estimate, SetIndex: i}
			found = true
		}
	}
	return best, found
}

// TotalVolume 全部有效组的 reps*weight 之和。没有有效组时 ok 为 false,
// 调用方必须区分 "没有数据" 和 "总量为零"。
func TotalVolume(reps []int, weights []float64) (float64, bool) {
	var total float64
	found := false
	n := usableLength(reps, weights)
	for i := 0; i < n; i++ {
		if reps[i] <= 0 || weights[i] <= 0 {
			continue
		}
		total += float64(reps[i]) * weights[i]
		found = true
	}
	return total, found
}
