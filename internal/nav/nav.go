package nav

import "fmt"

// Route names the destinations the client can navigate to.
type Route string

const (
	RouteLogin             Route = "Login"
	RouteOTP               Route = "OTP"
	RouteProfileCompletion Route = "ProfileCompletion"
	RouteMainTabs          Route = "MainTabs"
	RouteDistrict          Route = "District"
	RouteInvoiceDetail     Route = "InvoiceDetail"
	RouteTVLicense         Route = "TVLicense"
	RouteElectricity       Route = "Electricity"
	RouteECGPortal         Route = "ECGPortal"
	RoutePaymentHistory    Route = "PaymentHistory"
	RouteTvPaymentHistory  Route = "TvPaymentHistory"
	RouteHelpCenter        Route = "HelpCenter"
)

// Tab names the bottom tabs inside MainTabs.
type Tab string

const (
	TabHome         Tab = "Home"
	TabTransactions Tab = "Transactions"
	TabProfile      Tab = "Profile"
)

// Params carries the optional typed arguments a route accepts.
type Params struct {
	Phone       string
	InvoiceID   int
	Tab         Tab
	FocusArrear bool
}

// Entry is one frame on the navigation stack.
type Entry struct {
	Route  Route
	Params Params
}

// Stack is a minimal stack-and-tabs router: screens push onto the stack,
// replace swaps the top frame, and MainTabs tracks its active tab.
type Stack struct {
	frames    []Entry
	activeTab Tab
}

// NewStack starts the router at the given initial route.
func NewStack(initial Route) *Stack {
	s := &Stack{activeTab: TabHome}
	s.frames = []Entry{{Route: initial}}
	return s
}

// Current returns the top frame.
func (s *Stack) Current() Entry {
	return s.frames[len(s.frames)-1]
}

// ActiveTab returns the selected tab inside MainTabs.
func (s *Stack) ActiveTab() Tab {
	return s.activeTab
}

// Push adds a frame on top of the stack.
func (s *Stack) Push(route Route, params Params) {
	s.frames = append(s.frames, Entry{Route: route, Params: params})
	s.applyTab(params)
}

// Replace swaps the top frame, as after login where back must not return to
// the OTP screen.
func (s *Stack) Replace(route Route, params Params) {
	s.frames[len(s.frames)-1] = Entry{Route: route, Params: params}
	s.applyTab(params)
}

// Pop removes the top frame. Popping the last frame is an error.
func (s *Stack) Pop() error {
	if len(s.frames) == 1 {
		return fmt.Errorf("cannot pop the root route %s", s.frames[0].Route)
	}
	s.frames = s.frames[:len(s.frames)-1]
	return nil
}

// Reset discards the whole stack and starts over at route.
func (s *Stack) Reset(route Route, params Params) {
	s.frames = []Entry{{Route: route, Params: params}}
	s.activeTab = TabHome
	s.applyTab(params)
}

// SelectTab switches the active tab without touching the stack.
func (s *Stack) SelectTab(tab Tab) {
	s.activeTab = tab
}

// Depth reports the number of frames on the stack.
func (s *Stack) Depth() int {
	return len(s.frames)
}

func (s *Stack) applyTab(params Params) {
	if params.Tab != "" {
		s.activeTab = params.Tab
	}
}
