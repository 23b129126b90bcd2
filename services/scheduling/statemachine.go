package scheduling

import "mentorhub/models"

// legalEdges maps each non-terminal status to the statuses it may move to.
// cancelled and completed are terminal: no entry, no way out.
var legalEdges = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusCancelled, models.StatusCompleted},
}

// canTransition reports whether the edge from -> to is legal.
func canTransition(from, to models.BookingStatus) bool {
	for _, next := range legalEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// authorizedFor reports whether the actor may drive the booking to target.
//
//	-> confirmed: mentor of the booking, or admin
//	-> cancelled: owning member, mentor of the booking, or admin
//	-> completed: system (automatic sweep) or admin
func authorizedFor(actor models.Actor, booking *models.Booking, target models.BookingStatus) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}
	switch target {
	case models.StatusConfirmed:
		return actor.Role == models.RoleMentor && actor.ID == booking.MentorID
	case models.StatusCancelled:
		if actor.Role == models.RoleMentor && actor.ID == booking.MentorID {
			return true
		}
		return actor.Role == models.RoleMember && actor.ID == booking.MemberID
	case models.StatusCompleted:
		return actor.Role == models.RoleSystem
	}
	return false
}
