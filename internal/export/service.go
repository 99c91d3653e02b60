package export

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/homestay/homestay/internal/booking"
	"github.com/homestay/homestay/internal/house"
	"github.com/homestay/homestay/internal/user"
)

type Bookings interface {
	List(ctx context.Context, filter booking.ListFilter) ([]*booking.Booking, error)
}

type Houses interface {
	List(ctx context.Context) ([]*house.House, error)
	Counts(ctx context.Context) (total, vacant int, err error)
}

type Users interface {
	List(ctx context.Context) ([]*user.User, error)
	Count(ctx context.Context) (int, error)
}

type Revenue interface {
	Revenue(ctx context.Context) (int64, error)
}

// Service renders admin exports: CSV sheets, an analytics report and a zip
// bundling all of them.
type Service struct {
	bookings Bookings
	houses   Houses
	users    Users
	revenue  Revenue
	now      func() time.Time
}

func NewService(bookings Bookings, houses Houses, users Users, revenue Revenue) *Service {
	return &Service{
		bookings: bookings,
		houses:   houses,
		users:    users,
		revenue:  revenue,
		now:      time.Now,
	}
}

// Report holds the dashboard totals. TotalRevenue sums completed payments.
type Report struct {
	TotalUsers      int       `json:"totalUsers"`
	TotalHouses     int       `json:"totalHouses"`
	TotalBookings   int       `json:"totalBookings"`
	TotalRevenue    int64     `json:"totalRevenue"`
	PendingBookings int       `json:"pendingBookings"`
	AvailableHouses int       `json:"availableHouses"`
	GeneratedAt     time.Time `json:"generatedAt"`
}

func (s *Service) Report(ctx context.Context) (*Report, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}

	houses, vacant, err := s.houses.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting houses: %w", err)
	}

	bookings, err := s.bookings.List(ctx, booking.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}

	revenue, err := s.revenue.Revenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("summing revenue: %w", err)
	}

	pending := 0

	for _, b := range bookings {
		if b.Status == booking.StatusPending {
			pending++
		}
	}

	return &Report{
		TotalUsers:      users,
		TotalHouses:     houses,
		TotalBookings:   len(bookings),
		TotalRevenue:    revenue,
		PendingBookings: pending,
		AvailableHouses: vacant,
		GeneratedAt:     s.now().UTC(),
	}, nil
}

// Sheet names a single export file.
type Sheet string

const (
	SheetBookings Sheet = "bookings"
	SheetHouses   Sheet = "houses"
	SheetUsers    Sheet = "users"
	SheetReport   Sheet = "analytics_report"
)

var sheets = []Sheet{SheetBookings, SheetHouses, SheetUsers, SheetReport}

// Filename returns the dated download name, e.g. bookings_2024-06-01.csv.
func (s *Service) Filename(sheet Sheet, ext string) string {
	return fmt.Sprintf("%s_%s.%s", sheet, s.now().Format(time.DateOnly), ext)
}

// WriteCSV renders one sheet to w.
func (s *Service) WriteCSV(ctx context.Context, sheet Sheet, w io.Writer) error {
	var (
		records [][]string
		err     error
	)

	switch sheet {
	case SheetBookings:
		records, err = s.bookingRecords(ctx)
	case SheetHouses:
		records, err = s.houseRecords(ctx)
	case SheetUsers:
		records, err = s.userRecords(ctx)
	case SheetReport:
		records, err = s.reportRecords(ctx)
	default:
		return fmt.Errorf("unknown sheet: %s", sheet)
	}

	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("writing %s csv: %w", sheet, err)
	}

	return nil
}

// WriteArchive writes a zip containing every sheet as CSV.
func (s *Service) WriteArchive(ctx context.Context, w io.Writer) error {
	zw := zip.NewWriter(w)

	for _, sheet := range sheets {
		f, err := zw.Create(s.Filename(sheet, "csv"))
		if err != nil {
			return fmt.Errorf("adding %s to archive: %w", sheet, err)
		}

		if err := s.WriteCSV(ctx, sheet, f); err != nil {
			return err
		}
	}

	return zw.Close()
}

func (s *Service) bookingRecords(ctx context.Context) ([][]string, error) {
	bookings, err := s.bookings.List(ctx, booking.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}

	records := [][]string{{
		"Booking ID", "House Name", "User", "Start Date", "End Date", "Status", "Payment Status", "Price", "Created",
	}}

	for _, b := range bookings {
		houseName, price := "N/A", int64(0)
		if b.House != nil {
			houseName, price = b.House.Name, b.House.Price
		}

		guest := "N/A"
		if b.User != nil {
			guest = b.User.Username
			if guest == "" {
				guest = b.User.Email
			}
		}

		records = append(records, []string{
			b.ID.String(),
			houseName,
			guest,
			b.StartDate.Format(time.DateOnly),
			b.EndDate.Format(time.DateOnly),
			string(b.Status),
			string(b.PaymentStatus),
			strconv.FormatInt(price, 10),
			b.CreatedAt.Format(time.DateOnly),
		})
	}

	return records, nil
}

func (s *Service) houseRecords(ctx context.Context) ([][]string, error) {
	houses, err := s.houses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing houses: %w", err)
	}

	// Same columns as the bulk upload template so an export can be
	// re-imported.
	records := [][]string{{
		"name", "type", "description", "image", "imageLg", "country", "address",
		"bedrooms", "bathrooms", "surface", "year", "price", "status",
		"agentName", "agentPhone", "agentImage",
	}}

	for _, h := range houses {
		records = append(records, []string{
			h.Name, h.Type, h.Description, h.Image, h.ImageLg, h.Country, h.Address,
			h.Bedrooms, h.Bathrooms, h.Surface, h.Year, strconv.FormatInt(h.Price, 10), string(h.Status),
			h.Agent.Name, h.Agent.Phone, h.Agent.Image,
		})
	}

	return records, nil
}

func (s *Service) userRecords(ctx context.Context) ([][]string, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	records := [][]string{{"Username", "Email", "Role", "Address", "Date of Birth", "Created"}}

	for _, u := range users {
		records = append(records, []string{
			u.Username,
			u.Email,
			string(u.Role),
			orNA(u.Address),
			orNA(u.DateOfBirth),
			u.CreatedAt.Format(time.DateOnly),
		})
	}

	return records, nil
}

func (s *Service) reportRecords(ctx context.Context) ([][]string, error) {
	r, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}

	return [][]string{
		{"Metric", "Value"},
		{"Total Users", strconv.Itoa(r.TotalUsers)},
		{"Total Houses", strconv.Itoa(r.TotalHouses)},
		{"Total Bookings", strconv.Itoa(r.TotalBookings)},
		{"Total Revenue", strconv.FormatInt(r.TotalRevenue, 10)},
		{"Pending Bookings", strconv.Itoa(r.PendingBookings)},
		{"Available Houses", strconv.Itoa(r.AvailableHouses)},
		{"Report Date", r.GeneratedAt.Format(time.RFC3339)},
	}, nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}

	return s
}
