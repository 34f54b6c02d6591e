package model

const (
	RankBeginner      = "Beginner"
	RankSuperAchiever = "Super Achiever"

	superAchieverAbove = 50
	// ProgressTarget is the total the character progress bar fills toward.
	ProgressTarget = 100
)

func RankForPoints(total int) string {
	if total > superAchieverAbove {
		return RankSuperAchiever
	}
	return RankBeginner
}

func Progress(total int) float64 {
	if total <= 0 {
		return 0
	}
	if total >= ProgressTarget {
		return 1
	}
	return float64(total) / float64(ProgressTarget)
}
