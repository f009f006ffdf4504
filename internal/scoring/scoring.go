package scoring

import "math"

// ring is the number of distinct counter positions (0..100).
const ring = 101

// Distance returns the shortest distance between target and value on the
// 0..100 ring.
func Distance(target, value uint32) uint32 {
	var direct uint32
	if target > value {
		direct = target - value
	} else {
		direct = value - target
	}
	if ring-direct < direct {
		return ring - direct
	}
	return direct
}

// BaseScore maps the distance between target and counter to points
func BaseScore(target, value uint32) uint32 {
	switch d := Distance(target, value); {
	case d == 0:
		return 100
	case d <= 5:
		return 80
	case d <= 10:
		return 60
	case d <= 20:
		return 40
	case d <= 50:
		return 20
	default:
		return 0
	}
}

// Score applies (base + strength) / (miss + 1).
func Score(target, value, strength, miss uint32) uint32 {
	return (BaseScore(target, value) + strength) / (miss + 1)
}

// Average returns the mean of scores rounded up, or 0 for no scores.
func Average(scores []uint32) uint32 {
	if len(scores) == 0 {
		return 0
	}
	var sum uint64
	for _, s := range scores {
		sum += uint64(s)
	}
	return uint32(math.Ceil(float64(sum) / float64(len(scores))))
}
