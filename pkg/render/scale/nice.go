package scale

import "math"

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickIncrement returns the tick step for [start, stop]. A negative result
// -n stands for a step of 1/n, which keeps small steps exact.
func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / math.Max(0, float64(count))
	power := math.Floor(math.Log10(step))
	err := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case err >= e10:
		factor = 10
	case err >= e5:
		factor = 5
	case err >= e2:
		factor = 2
	}
	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

func niceDomain(d0, d1 float64, count int) (float64, float64) {
	start, stop := d0, d1
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}
	var prestep float64
	for range 10 {
		step := tickIncrement(start, stop, count)
		if step == prestep {
			break
		}
		switch {
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		default:
			return d0, d1
		}
		prestep = step
	}
	if reversed {
		return stop, start
	}
	return start, stop
}
