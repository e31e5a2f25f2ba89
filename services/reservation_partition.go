package services

import (
	"sort"
	"time"

	"airhotel-web/models"
	"airhotel-web/utils"
)

// ReservationPartition is the upcoming / past / canceled view of one fetch
type ReservationPartition struct {
	Upcoming []models.Reservation
	Past     []models.Reservation
	Canceled []models.Reservation
}

// PartitionReservations sorts by check-in (unreadable dates last) and splits
// the set. Canceled wins over dates; a stay whose check-out is before today
// is past; everything else, ongoing stays included, is upcoming.
func PartitionReservations(reservations []models.Reservation, now time.Time) ReservationPartition {
	sorted := make([]models.Reservation, len(reservations))
	copy(sorted, reservations)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, aok := utils.ParseLocalDate(sorted[i].CheckInDate)
		b, bok := utils.ParseLocalDate(sorted[j].CheckInDate)
		switch {
		case aok && bok:
			return a.Before(b)
		case aok:
			return true
		default:
			return false
		}
	})

	partition := ReservationPartition{
		Upcoming: []models.Reservation{},
		Past:     []models.Reservation{},
		Canceled: []models.Reservation{},
	}
	for _, reservation := range sorted {
		switch {
		case reservation.IsCanceled():
			partition.Canceled = append(partition.Canceled, reservation)
		case utils.IsPast(reservation.CheckOutDate, now):
			partition.Past = append(partition.Past, reservation)
		default:
			partition.Upcoming = append(partition.Upcoming, reservation)
		}
	}
	return partition
}
