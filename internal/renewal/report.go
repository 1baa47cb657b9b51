package renewal

import (
	"fmt"
	"io"
	"strings"
)

const dateLayout = "02/01/2006"

// Render writes the renewal report as a console text report.
func Render(w io.Writer, r *Report) {
	fmt.Fprintf(w, "Current date: %s\n", r.Now.Format(dateLayout))
	fmt.Fprintf(w, "Checking for renewals needed by: %s\n", r.WindowEnd.Format(dateLayout))
	rule(w, "=", 70)
	fmt.Fprintln(w, "SCOUTERS NEEDING RENEWAL WITHIN THE LOOKAHEAD WINDOW:")
	rule(w, "=", 70)

	if len(r.DueSoon) == 0 {
		fmt.Fprintln(w, "\nNo scouters need safeguarding or vetting renewal within the window.")
	} else {
		fmt.Fprintf(w, "\nFound %d scouter(s) needing renewal:\n\n", len(r.DueSoon))
		for _, rec := range r.DueSoon {
			fmt.Fprintf(w, "Name: %s\n", rec.Name)
			fmt.Fprintf(w, "Email: %s\n", rec.Email)
			if s := rec.Safeguarding; s != nil {
				fmt.Fprintf(w, "  - Safeguarding: Expires %s (in %d days)\n", s.Expires.Format(dateLayout), s.DaysUntil)
			}
			if v := rec.Vetting; v != nil {
				fmt.Fprintf(w, "  - Vetting: Expires %s (in %d days)\n", v.Expires.Format(dateLayout), v.DaysUntil)
			}
			rule(w, "-", 50)
		}
	}

	fmt.Fprintln(w)
	rule(w, "=", 70)
	fmt.Fprintln(w, "SCOUTERS WITH EXPIRED REQUIREMENTS:")
	rule(w, "=", 70)

	if len(r.Expired) == 0 {
		fmt.Fprintln(w, "\nNo expired safeguarding or vetting requirements found.")
		return
	}

	fmt.Fprintf(w, "\nFound %d expired requirement(s):\n\n", len(r.Expired))
	for _, item := range r.Expired {
		fmt.Fprintf(w, "%s - %s\n", item.Name, item.Kind)
		fmt.Fprintf(w, "  Email: %s\n", item.Email)
		fmt.Fprintf(w, "  Expired %d days ago (was due %s)\n", item.DaysExpired, item.Expires.Format(dateLayout))
		rule(w, "-", 40)
	}
}

func rule(w io.Writer, ch string, n int) {
	fmt.Fprintln(w, strings.Repeat(ch, n))
}
