package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/pup/internal/api"
	"github.com/example/pup/internal/config"
	"github.com/example/pup/internal/flow"
	"github.com/example/pup/internal/format"
	"github.com/example/pup/internal/nav"
	"github.com/example/pup/internal/session"
	"github.com/example/pup/internal/store"
)

func main() {
	cmd := flag.String("cmd", "status", "Command: status|login|verify|complete|profile|invoices|invoice|pay|generate|district|tv|tv-plan|tv-invoices|electricity|history|tv-history|transactions|helpdesk|logout")
	phone := flag.String("phone", "", "Phone number (login/verify)")
	otp := flag.String("otp", "", "4-digit OTP code (verify)")
	id := flag.Int("id", 0, "Invoice id (invoice/pay)")
	amount := flag.Float64("amount", 0, "Payment amount in GHS (pay)")
	method := flag.String("method", "mobile_money", "Payment method")
	plan := flag.String("plan", "", "Payment plan: monthly|quarterly|yearly")
	reqType := flag.String("type", "", "Help centre request type")
	message := flag.String("message", "", "Help centre message")
	flag.Parse()

	cfg := config.Load()

	st, err := store.Open(cfg.DataDir, cfg.DeviceSecret)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	client := api.New(cfg.BaseURL, cfg.HTTPTimeout)
	sess := session.NewManager(st, client)
	ctx := context.Background()

	var runErr error
	switch *cmd {
	case "status":
		runErr = showStatus(ctx, sess, client)
	case "login":
		runErr = login(ctx, sess, client, *phone)
	case "verify":
		runErr = verify(ctx, sess, client, *phone, *otp)
	case "complete":
		runErr = completeProfile(ctx, sess, client, st)
	case "profile":
		runErr = showProfile(ctx, sess, client)
	case "invoices":
		runErr = listInvoices(ctx, sess, client)
	case "invoice":
		runErr = showInvoice(ctx, sess, client, *id)
	case "pay":
		runErr = pay(ctx, sess, client, *id, *amount, *method)
	case "generate":
		runErr = generate(ctx, sess, client, *plan, *method)
	case "district":
		runErr = showDistrict(ctx, sess, client, st)
	case "tv":
		runErr = tvOverview(ctx, sess, client, st)
	case "tv-plan":
		runErr = tvPlan(ctx, sess, client, st, *plan, *method)
	case "tv-invoices":
		runErr = tvInvoices(ctx, sess, client, st, *plan)
	case "electricity":
		runErr = electricity(ctx, sess, client)
	case "history":
		runErr = paymentHistory(ctx, sess, client)
	case "tv-history":
		runErr = tvHistory(ctx, sess, client)
	case "transactions":
		runErr = transactions(ctx, sess, client)
	case "helpdesk":
		runErr = helpdesk(ctx, sess, client, *reqType, *message)
	case "logout":
		runErr = logout(ctx, sess, client)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}

	if runErr != nil {
		fmt.Println("Error:", runErr)
		os.Exit(1)
	}
}

func showStatus(ctx context.Context, sess *session.Manager, client *api.Client) error {
	route := sess.Bootstrap(ctx)
	fmt.Println("Route:", route)

	if route != nav.RouteMainTabs {
		return nil
	}

	home, err := flow.NewHome(sess, client).Overview(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s, %s\n", home.Greeting, home.Name)
	if home.HasNext {
		fmt.Printf("Next invoice #%d: %s due %s\n",
			home.NextInvoice.InvoiceID,
			format.Amount(home.NextInvoice.Amount),
			format.Date(home.NextInvoice.DueDate))
	}
	return nil
}

func login(ctx context.Context, sess *session.Manager, client *api.Client, phone string) error {
	route, params, err := flow.NewLogin(sess, client).Submit(ctx, phone)
	if err != nil {
		return err
	}
	fmt.Printf("OTP sent to %s. Next: -cmd verify -otp CODE (route %s)\n", params.Phone, route)
	return nil
}

func verify(ctx context.Context, sess *session.Manager, client *api.Client, phone, code string) error {
	if phone == "" {
		cached, err := sess.Phone(ctx)
		if err != nil {
			return err
		}
		phone = cached
	}

	route, _, err := flow.NewOTP(sess, client, phone).Submit(ctx, code)
	if err != nil {
		return err
	}
	fmt.Println("Verified. Route:", route)
	return nil
}

// completeProfile walks the three wizard steps on the terminal. The draft is
// persisted as fields are entered, so a quit mid-way resumes where it left
// off.
func completeProfile(ctx context.Context, sess *session.Manager, client *api.Client, st *store.Store) error {
	wizard, err := flow.NewWizard(ctx, sess, client, st)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	prompt := func(label string, current string, assign func(*flow.Draft, string)) error {
		fmt.Printf("%s [%s]: ", label, current)
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		if value := strings.TrimSpace(line); value != "" {
			return wizard.SetField(ctx, func(d *flow.Draft) { assign(d, value) })
		}
		return nil
	}

	steps := []func(flow.Draft) []promptSpec{step1, step2, step3}
	for {
		draft := wizard.Draft()
		fmt.Printf("-- Step %d of 3 --\n", wizard.Step())
		for _, spec := range steps[wizard.Step()-1](draft) {
			if err := prompt(spec.label, spec.current, spec.assign); err != nil {
				return err
			}
		}
		if wizard.Step() == 3 {
			break
		}
		if err := wizard.Next(ctx); err != nil {
			return err
		}
	}

	route, _, err := wizard.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Profile completed. Route:", route)
	return nil
}

type promptSpec struct {
	label   string
	current string
	assign  func(*flow.Draft, string)
}

func step1(d flow.Draft) []promptSpec {
	specs := []promptSpec{
		{"First name", d.FirstName, func(d *flow.Draft, v string) { d.FirstName = v }},
		{"Last name", d.LastName, func(d *flow.Draft, v string) { d.LastName = v }},
		{"Ghana card id", d.GhanaCardID, func(d *flow.Draft, v string) { d.GhanaCardID = v }},
		{"Email", d.Email, func(d *flow.Draft, v string) { d.Email = v }},
		{"Account type (individual/business)", d.PropertyUserType, func(d *flow.Draft, v string) { d.PropertyUserType = v }},
	}
	switch d.PropertyUserType {
	case "business":
		specs = append(specs,
			promptSpec{"Business name", d.BusinessName, func(d *flow.Draft, v string) { d.BusinessName = v }},
			promptSpec{"Registration no", d.RegistrationNo, func(d *flow.Draft, v string) { d.RegistrationNo = v }},
			promptSpec{"Business type", d.BusinessType, func(d *flow.Draft, v string) { d.BusinessType = v }},
		)
	case "individual":
		specs = append(specs,
			promptSpec{"Individual type", d.IndividualType, func(d *flow.Draft, v string) { d.IndividualType = v }},
		)
	}
	return specs
}

func step2(d flow.Draft) []promptSpec {
	return []promptSpec{
		{"Region", d.Region, func(d *flow.Draft, v string) { d.Region = v }},
		{"District", d.District, func(d *flow.Draft, v string) { d.District = v }},
		{"Digital address", d.DigitalAddress, func(d *flow.Draft, v string) { d.DigitalAddress = v }},
		{"Type of premise", d.TypeOfPremise, func(d *flow.Draft, v string) { d.TypeOfPremise = v }},
		{"Property account number", d.PropertyAccountNumber, func(d *flow.Draft, v string) { d.PropertyAccountNumber = v }},
	}
}

func step3(d flow.Draft) []promptSpec {
	return []promptSpec{
		{"Number of TVs", d.NoOfTV, func(d *flow.Draft, v string) { d.NoOfTV = v }},
		{"ECG meter number", d.ECGMeterNumber, func(d *flow.Draft, v string) { d.ECGMeterNumber = v }},
		{"Location (lat,lng)", d.Location, func(d *flow.Draft, v string) { d.Location = v }},
		{"Exemption", d.Exemption, func(d *flow.Draft, v string) { d.Exemption = v }},
	}
}

func showProfile(ctx context.Context, sess *session.Manager, client *api.Client) error {
	details, err := flow.NewAccount(sess, client).Get(ctx)
	if err != nil {
		return err
	}
	p := details.Profile
	fmt.Printf("%s %s (%s)\n", p.FirstName, p.LastName, details.User.Phone)
	fmt.Printf("Region: %s  District: %s\n", p.Region, p.District)
	fmt.Printf("Digital address: %s  TVs: %d\n", p.DigitalAddress, p.NoOfTV)
	return nil
}

func listInvoices(ctx context.Context, sess *session.Manager, client *api.Client) error {
	invoices, err := flow.NewInvoices(sess, client).List(ctx)
	if err != nil {
		return err
	}
	if len(invoices) == 0 {
		fmt.Println("No invoices found for your account.")
		return nil
	}
	for _, inv := range invoices {
		fmt.Printf("#%d  %s  due %s  [%s]\n",
			inv.ID, format.Amount(inv.TotalDue()), format.Date(inv.DueDate), inv.Status)
	}
	return nil
}

func showInvoice(ctx context.Context, sess *session.Manager, client *api.Client, id int) error {
	inv, err := flow.NewInvoices(sess, client).Detail(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("Invoice #%d for %s\n", inv.ID, inv.UserName)
	fmt.Printf("Amount: %s  Arrears: %s  Paid: %s\n",
		format.Amount(inv.Amount), format.Amount(inv.Arrears), format.Amount(inv.Payment))
	fmt.Printf("Total due: %s  Status: %s  Due: %s\n",
		format.Amount(inv.TotalDue()), inv.Status, format.Date(inv.DueDate))
	return nil
}

func pay(ctx context.Context, sess *session.Manager, client *api.Client, id int, amount float64, method string) error {
	refreshed, result, err := flow.NewInvoices(sess, client).Pay(ctx, id, amount, method)
	if err != nil {
		// A non-empty result means the payment itself was recorded and only
		// the status refresh failed; say so before reporting the error.
		if result.Message != "" {
			fmt.Println(result.Message)
		}
		return err
	}
	fmt.Println(result.Message)
	fmt.Printf("Invoice #%d is now %s, outstanding %s\n",
		refreshed.ID, refreshed.Status, format.Amount(refreshed.TotalDue()))
	return nil
}

func generate(ctx context.Context, sess *session.Manager, client *api.Client, plan, method string) error {
	result, err := flow.NewInvoices(sess, client).Generate(ctx, plan, method)
	if err != nil {
		return err
	}
	fmt.Println(result.Message)
	for _, inv := range result.Invoices {
		fmt.Printf("#%d  %s  due %s\n", inv.ID, format.Amount(inv.Amount), format.Date(inv.DueDate))
	}
	return nil
}

func showDistrict(ctx context.Context, sess *session.Manager, client *api.Client, st *store.Store) error {
	district, err := flow.NewDistricts(sess, client, st).Details(ctx)
	if err != nil {
		return err
	}
	fmt.Println(district.DistrictName)
	fmt.Printf("%s | %s | %s\n", district.Location, district.Phone, district.Email)
	return nil
}

func tvOverview(ctx context.Context, sess *session.Manager, client *api.Client, st *store.Store) error {
	data, err := flow.NewTVLicense(sess, client, st).Overview(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("TVs: %d  Account: %s  Plan: %s\n", data.NoOfTV, data.PlatformAccount, data.PaymentPlan)
	return nil
}

func tvPlan(ctx context.Context, sess *session.Manager, client *api.Client, st *store.Store, plan, method string) error {
	result, err := flow.NewTVLicense(sess, client, st).ChoosePlan(ctx, plan, method)
	if err != nil {
		return err
	}
	fmt.Println(result.Message)
	return nil
}

func tvInvoices(ctx context.Context, sess *session.Manager, client *api.Client, st *store.Store, plan string) error {
	invoices, err := flow.NewTVLicense(sess, client, st).Invoices(ctx, plan)
	if err != nil {
		return err
	}
	for _, inv := range invoices {
		fmt.Printf("#%d  %s  due %s  [%s]\n",
			inv.ID, format.Amount(inv.Amount), format.Date(inv.DueDate), inv.Status)
	}
	return nil
}

func electricity(ctx context.Context, sess *session.Manager, client *api.Client) error {
	arrears, err := flow.NewElectricity(sess, client).Check(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("District arrears: %s\n", format.Amount(arrears.Arrears))
	if len(arrears.OverdueMonths) > 0 {
		fmt.Println("Overdue months:", strings.Join(arrears.OverdueMonths, ", "))
	}
	return nil
}

func paymentHistory(ctx context.Context, sess *session.Manager, client *api.Client) error {
	payments, err := flow.NewHistory(sess, client).Payments(ctx)
	if err != nil {
		return err
	}
	printPayments(payments)
	return nil
}

func tvHistory(ctx context.Context, sess *session.Manager, client *api.Client) error {
	payments, err := flow.NewHistory(sess, client).TVPayments(ctx)
	if err != nil {
		return err
	}
	printPayments(payments)
	return nil
}

func printPayments(payments []api.Payment) {
	if len(payments) == 0 {
		fmt.Println("No payments found.")
		return
	}
	for _, p := range payments {
		fmt.Printf("invoice #%d  %s  %s  via %s  [%s]\n",
			p.InvoiceID, format.Amount(p.AmountPaid), format.Date(p.PaymentDate), p.PaymentMethod, p.Status)
	}
}

func transactions(ctx context.Context, sess *session.Manager, client *api.Client) error {
	list, err := flow.NewHistory(sess, client).Transactions(ctx)
	if err != nil {
		return err
	}
	for _, tx := range list {
		fmt.Printf("%d  %s  %s  %s  [%s]\n",
			tx.ID, tx.Type, format.Amount(tx.Amount), format.Date(tx.Date), tx.Status)
	}
	return nil
}

func helpdesk(ctx context.Context, sess *session.Manager, client *api.Client, reqType, message string) error {
	if err := flow.NewHelpCenter(sess, client).Submit(ctx, reqType, message); err != nil {
		return err
	}
	fmt.Println("Your request has been sent.")
	return nil
}

func logout(ctx context.Context, sess *session.Manager, client *api.Client) error {
	route, err := flow.NewAccount(sess, client).Logout(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Logged out. Route:", route)
	return nil
}
