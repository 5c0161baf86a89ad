// Package pricing computes session prices and the platform fee split.
// All functions are pure and deterministic.
package pricing

import "math"

// PlatformFeeRate доля платформы в стоимости сессии
const PlatformFeeRate = 0.15

// ComputeTotal возвращает стоимость сессии: hourlyRate * duration/60,
// округленную до двух знаков (round half-up, как в отображении цен).
func ComputeTotal(hourlyRate float64, durationMinutes int) float64 {
	return roundHalfUp(hourlyRate * float64(durationMinutes) / 60.0)
}

// ComputeTrainerEarnings возвращает долю тренера после вычета комиссии платформы
func ComputeTrainerEarnings(total float64) float64 {
	return ComputeTrainerEarningsWithFee(total, PlatformFeeRate)
}

// ComputeTrainerEarningsWithFee вариант с явной ставкой комиссии
func ComputeTrainerEarningsWithFee(total, feeRate float64) float64 {
	return roundHalfUp(total * (1 - feeRate))
}

// ComputePlatformFee возвращает комиссию платформы с сессии
func ComputePlatformFee(total float64) float64 {
	return roundHalfUp(total * PlatformFeeRate)
}

// roundHalfUp округляет до двух знаков по правилу "половина вверх".
// Банковское округление здесь не подходит: 95.625 должно давать 95.63.
func roundHalfUp(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
