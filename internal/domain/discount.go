package domain

import "time"

// DiscountType тип скидки
type DiscountType string

const (
	DiscountNone     DiscountType = "none"
	DiscountLoyalty  DiscountType = "loyalty"
	DiscountBirthday DiscountType = "birthday"
)

// DiscountCounter накопительное состояние скидки лояльности клиента:
// количество процедур, завершённых после последнего погашения скидки.
// Счётчик никогда не уходит ниже нуля (декременты ограничиваются нулём)
// и сбрасывается ровно в момент погашения скидки.
type DiscountCounter struct {
	CustomerID     int64
	TreatmentCount int
	LastRedemption *time.Time // nil - скидка ещё ни разу не погашалась
	UpdatedAt      time.Time
}

// DiscountProgress прогресс накопления скидки лояльности
type DiscountProgress struct {
	Current   int // текущее значение счётчика
	Required  int // порог для получения скидки
	Remaining int // сколько процедур осталось, не меньше 0
}

// DiscountInfo результат расчёта скидки для конкретной цены.
// Скидка лояльности и скидка на день рождения взаимоисключающие:
// лояльность проверяется и применяется первой.
type DiscountInfo struct {
	Type       DiscountType
	Percentage float64
	Amount     float64
	Eligible   bool
	Progress   DiscountProgress
}
