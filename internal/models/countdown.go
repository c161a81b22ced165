package models

import "time"

type Countdown struct {
	Deadline time.Time `json:"deadline"`
	Days     int       `json:"days"`
	Hours    int       `json:"hours"`
	Minutes  int       `json:"minutes"`
	Seconds  int       `json:"seconds"`
	Expired  bool      `json:"expired"`
}

// NewCountdown splits the time left until deadline into whole units.
func NewCountdown(deadline, now time.Time) Countdown {
	c := Countdown{Deadline: deadline}

	left := deadline.Sub(now)
	if left <= 0 {
		c.Expired = true
		return c
	}

	secs := int(left / time.Second)
	c.Days = secs / 86400
	c.Hours = secs % 86400 / 3600
	c.Minutes = secs % 3600 / 60
	c.Seconds = secs % 60

	return c
}

type FlashSaleResponse struct {
	Countdown Countdown        `json:"countdown"`
	Window    *SectionResponse `json:"window"`
}
