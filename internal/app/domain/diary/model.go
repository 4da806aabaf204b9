// Package diary holds the food diary entities: logged days, foods, and the
// association recording which foods were eaten on which day.
package diary

import "time"

// StorageDateLayout is the compact form dates are persisted in.
const StorageDateLayout = "20060102"

// InputDateLayout is the form dates arrive in from the UI.
const InputDateLayout = "2006-01-02"

// DisplayDateLayout is the long form rendered on pages.
const DisplayDateLayout = "January 02, 2006"

// LogDate is a calendar day with at least one diary entry. EntryDate is
// stored in StorageDateLayout.
type LogDate struct {
	ID        int64  `db:"id"`
	EntryDate string `db:"entry_date"`
}

// DisplayDate renders the stored date for page output. Unparseable values
// fall back to the raw stored string.
func (d LogDate) DisplayDate() string {
	t, err := time.Parse(StorageDateLayout, d.EntryDate)
	if err != nil {
		return d.EntryDate
	}
	return t.Format(DisplayDateLayout)
}

// Food is a food item with its macros. Calories is derived once at creation
// time and stored; it is never recomputed from the macros on read.
type Food struct {
	ID            int64  `db:"id"`
	Name          string `db:"name"`
	Protein       int    `db:"protein"`
	Carbohydrates int    `db:"carbohydrates"`
	Fat           int    `db:"fat"`
	Calories      int    `db:"calories"`
}

// Nutrition is a macro/calorie total.
type Nutrition struct {
	Protein       int `db:"protein"`
	Carbohydrates int `db:"carbohydrates"`
	Fat           int `db:"fat"`
	Calories      int `db:"calories"`
}

// DaySummary is a logged day with its nutrition totals aggregated in SQL.
type DaySummary struct {
	LogDate
	Nutrition
}

// DayDetail is a single day with its foods and a running total summed in
// application code. Both aggregation paths must agree for the same fixtures.
type DayDetail struct {
	Day   LogDate
	Foods []Food
	Total Nutrition
}
