package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/sagarvd01/teamtrack/internal/models"
	"github.com/sagarvd01/teamtrack/internal/query"
	"gorm.io/gorm"
)

type AnalyticsClientStore interface {
	CountAll(scopes ...func(*gorm.DB) *gorm.DB) (int64, error)
	CountByStatus(status models.ClientStatus) (int64, error)
	CountCreatedBetween(from time.Time, until time.Time, scopes ...func(*gorm.DB) *gorm.DB) (int64, error)
	CountByNextContactRange(from time.Time, until time.Time, scopes ...func(*gorm.DB) *gorm.DB) (int64, error)
	GroupCountByAssignee() ([]models.AssigneeCount, error)
	ListCreatedSince(since time.Time) ([]models.Client, error)
	ListWithSubEntries(scopes ...func(*gorm.DB) *gorm.DB) ([]models.Client, error)
	ListByNextContact(from time.Time, until time.Time, orderBy string, scopes ...func(*gorm.DB) *gorm.DB) ([]models.Client, error)
}

type AnalyticsAttendanceStore interface {
	ListSince(since time.Time) ([]models.Attendance, error)
	CountByStatus(status models.AttendanceStatus) (int64, error)
	FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.Attendance, bool, error)
}

type AnalyticsUserStore interface {
	SummariesByID(userIDs []uint) (map[uint]models.UserSummary, error)
}

// AnalyticsService folds read-only summaries over the client and attendance
// collections. Counts and groupings the store can answer directly go to SQL;
// time buckets and the JSON sub-collections are folded in memory.
type AnalyticsService struct {
	clients     AnalyticsClientStore
	attendances AnalyticsAttendanceStore
	users       AnalyticsUserStore
	location    *time.Location
}

func NewAnalyticsService(clients AnalyticsClientStore, attendances AnalyticsAttendanceStore, users AnalyticsUserStore, location *time.Location) *AnalyticsService {
	return &AnalyticsService{clients: clients, attendances: attendances, users: users, location: location}
}

func (service *AnalyticsService) ClientMetrics(now time.Time) (models.ClientMetrics, error) {
	metrics := models.ClientMetrics{}

	var err error
	if metrics.TotalClients, err = service.clients.CountAll(); err != nil {
		return metrics, err
	}
	if metrics.StatusDistribution.Prospect, err = service.clients.CountByStatus(models.StatusProspect); err != nil {
		return metrics, err
	}
	if metrics.StatusDistribution.Active, err = service.clients.CountByStatus(models.StatusActive); err != nil {
		return metrics, err
	}
	if metrics.StatusDistribution.Inactive, err = service.clients.CountByStatus(models.StatusInactive); err != nil {
		return metrics, err
	}
	if metrics.ClientsByTeamMember, err = service.clients.GroupCountByAssignee(); err != nil {
		return metrics, err
	}

	sixMonthsAgo := now.In(service.location).AddDate(0, -6, 0)
	recent, err := service.clients.ListCreatedSince(sixMonthsAgo)
	if err != nil {
		return metrics, err
	}
	metrics.ClientsOverTime = bucketByMonth(recent, service.location)

	return metrics, nil
}

func (service *AnalyticsService) AttendanceMetrics(now time.Time) (models.AttendanceMetrics, error) {
	metrics := models.AttendanceMetrics{}

	thirtyDaysAgo := now.In(service.location).AddDate(0, 0, -30)
	records, err := service.attendances.ListSince(thirtyDaysAgo)
	if err != nil {
		return metrics, err
	}
	metrics.AttendanceByDate = bucketByDay(records, service.location)

	if metrics.StatusDistribution.Present, err = service.attendances.CountByStatus(models.AttendancePresent); err != nil {
		return metrics, err
	}
	if metrics.StatusDistribution.Absent, err = service.attendances.CountByStatus(models.AttendanceAbsent); err != nil {
		return metrics, err
	}
	if metrics.StatusDistribution.Leave, err = service.attendances.CountByStatus(models.AttendanceLeave); err != nil {
		return metrics, err
	}
	if metrics.StatusDistribution.HalfDay, err = service.attendances.CountByStatus(models.AttendanceHalfDay); err != nil {
		return metrics, err
	}

	return metrics, nil
}

func (service *AnalyticsService) Performance() (models.PerformanceMetrics, error) {
	metrics := models.PerformanceMetrics{
		InteractionsPerTeamMember: []models.NameCount{},
		FeedbackByTeamMember:      []models.FeedbackAverage{},
	}

	clients, err := service.clients.ListWithSubEntries()
	if err != nil {
		return metrics, err
	}

	interactionCounts := make(map[uint]int64)
	type feedbackFold struct {
		sum   int64
		count int64
	}
	feedbackByAssignee := make(map[uint]feedbackFold)

	for index := range clients {
		for _, interaction := range clients[index].Interactions {
			interactionCounts[interaction.CreatedBy]++
		}
		if len(clients[index].Feedback) > 0 {
			fold := feedbackByAssignee[clients[index].AssignedTo]
			for _, feedback := range clients[index].Feedback {
				fold.sum += int64(feedback.Rating)
				fold.count++
			}
			feedbackByAssignee[clients[index].AssignedTo] = fold
		}
	}

	userIDs := make([]uint, 0, len(interactionCounts)+len(feedbackByAssignee))
	for userID := range interactionCounts {
		userIDs = append(userIDs, userID)
	}
	for userID := range feedbackByAssignee {
		userIDs = append(userIDs, userID)
	}
	summaries, err := service.users.SummariesByID(userIDs)
	if err != nil {
		return metrics, err
	}

	for userID, count := range interactionCounts {
		summary, known := summaries[userID]
		if !known {
			continue
		}
		metrics.InteractionsPerTeamMember = append(metrics.InteractionsPerTeamMember, models.NameCount{
			Name:  summary.Name,
			Count: count,
		})
	}
	for userID, fold := range feedbackByAssignee {
		summary, known := summaries[userID]
		if !known || fold.count == 0 {
			continue
		}
		metrics.FeedbackByTeamMember = append(metrics.FeedbackByTeamMember, models.FeedbackAverage{
			Name:          summary.Name,
			AvgRating:     float64(fold.sum) / float64(fold.count),
			FeedbackCount: fold.count,
		})
	}

	sort.Slice(metrics.InteractionsPerTeamMember, func(i, j int) bool {
		return metrics.InteractionsPerTeamMember[i].Name < metrics.InteractionsPerTeamMember[j].Name
	})
	sort.Slice(metrics.FeedbackByTeamMember, func(i, j int) bool {
		return metrics.FeedbackByTeamMember[i].Name < metrics.FeedbackByTeamMember[j].Name
	})

	return metrics, nil
}

// Followups lists clients due for contact within the next seven days,
// soonest first, scoped to the caller's own records for non-admins.
func (service *AnalyticsService) Followups(user *models.User, now time.Time) ([]models.Client, error) {
	dayStart, _ := DayRange(now, service.location)
	return service.clients.ListByNextContact(dayStart, dayStart.AddDate(0, 0, 7), "next_contact_at ASC", query.Scope(user, "assigned_to"))
}

func (service *AnalyticsService) Dashboard(user *models.User, now time.Time) (models.DashboardData, error) {
	dashboard := models.DashboardData{RecentActivities: []models.ActivityItem{}}
	scope := query.Scope(user, "assigned_to")

	var err error
	if dashboard.TotalClients, err = service.clients.CountAll(scope); err != nil {
		return dashboard, err
	}

	dayStart, dayEnd := DayRange(now, service.location)
	if dashboard.NewClientsToday, err = service.clients.CountCreatedBetween(dayStart, dayEnd, scope); err != nil {
		return dashboard, err
	}
	if dashboard.UpcomingFollowUps, err = service.clients.CountByNextContactRange(dayStart, dayStart.AddDate(0, 0, 3), scope); err != nil {
		return dashboard, err
	}

	if !user.IsAdmin() {
		record, exists, err := service.attendances.FindByUserAndDayRange(user.ID, dayStart, dayEnd)
		if err != nil {
			return dashboard, err
		}
		if exists {
			dashboard.AttendanceToday = &record
		}
	}

	activities, err := service.recentActivities(scope)
	if err != nil {
		return dashboard, err
	}
	dashboard.RecentActivities = activities

	return dashboard, nil
}

// recentActivities flattens the interaction sub-collections of the visible
// clients and keeps the five most recent entries.
func (service *AnalyticsService) recentActivities(scope func(*gorm.DB) *gorm.DB) ([]models.ActivityItem, error) {
	clients, err := service.clients.ListWithSubEntries(scope)
	if err != nil {
		return nil, err
	}

	type activity struct {
		item  models.ActivityItem
		actor uint
	}
	flattened := make([]activity, 0)
	for index := range clients {
		for _, interaction := range clients[index].Interactions {
			flattened = append(flattened, activity{
				item: models.ActivityItem{
					ClientName:       clients[index].Name,
					ClientID:         clients[index].ID,
					InteractionType:  interaction.Type,
					InteractionDate:  interaction.OccurredAt,
					InteractionNotes: interaction.Notes,
				},
				actor: interaction.CreatedBy,
			})
		}
	}
	sort.Slice(flattened, func(i, j int) bool {
		return flattened[i].item.InteractionDate.After(flattened[j].item.InteractionDate)
	})
	if len(flattened) > 5 {
		flattened = flattened[:5]
	}

	actorIDs := make([]uint, 0, len(flattened))
	for _, entry := range flattened {
		actorIDs = append(actorIDs, entry.actor)
	}
	summaries, err := service.users.SummariesByID(actorIDs)
	if err != nil {
		return nil, err
	}

	items := make([]models.ActivityItem, 0, len(flattened))
	for _, entry := range flattened {
		item := entry.item
		if summary, known := summaries[entry.actor]; known {
			item.UserName = summary.Name
		}
		items = append(items, item)
	}
	return items, nil
}

func bucketByMonth(clients []models.Client, location *time.Location) []models.MonthBucket {
	counts := make(map[string]int64)
	order := make([]string, 0)
	for index := range clients {
		created := clients[index].CreatedAt.In(location)
		label := fmt.Sprintf("%d-%d", created.Year(), int(created.Month()))
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	buckets := make([]models.MonthBucket, 0, len(order))
	for _, label := range order {
		buckets = append(buckets, models.MonthBucket{Date: label, Count: counts[label]})
	}
	return buckets
}

func bucketByDay(records []models.Attendance, location *time.Location) []models.DayBucket {
	type fold struct {
		count      int64
		hoursSum   float64
		hoursCount int64
	}
	folds := make(map[string]*fold)
	order := make([]string, 0)
	for index := range records {
		day := records[index].Date.In(location)
		label := fmt.Sprintf("%d-%d-%d", day.Year(), int(day.Month()), day.Day())
		entry, seen := folds[label]
		if !seen {
			entry = &fold{}
			folds[label] = entry
			order = append(order, label)
		}
		entry.count++
		if records[index].TotalHours > 0 {
			entry.hoursSum += records[index].TotalHours
			entry.hoursCount++
		}
	}

	buckets := make([]models.DayBucket, 0, len(order))
	for _, label := range order {
		entry := folds[label]
		avgHours := 0.0
		if entry.hoursCount > 0 {
			avgHours = entry.hoursSum / float64(entry.hoursCount)
		}
		buckets = append(buckets, models.DayBucket{Date: label, Count: entry.count, AvgHours: avgHours})
	}
	return buckets
}
