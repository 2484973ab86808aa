package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	domain "github.com/pasumbalss/wansilog/internal/entity"
	"github.com/pasumbalss/wansilog/internal/security"
	"github.com/pasumbalss/wansilog/internal/usecase"
)

// Session drives the single-terminal operator loop: welcome screen,
// sign up / log in, then the order menu until the cashier exits. Every
// prompt accepts "0" to cancel and bad input re-prompts.
type Session struct {
	in       *bufio.Scanner
	out      io.Writer
	catalog  *domain.Catalog
	order    *domain.Order
	checkout *usecase.Checkout
	creds    *security.CredentialStore
	log      *slog.Logger

	cashier   string
	sessionID string
}

func NewSession(in io.Reader, out io.Writer, catalog *domain.Catalog, checkout *usecase.Checkout, creds *security.CredentialStore, log *slog.Logger) *Session {
	return &Session{
		in:       bufio.NewScanner(in),
		out:      out,
		catalog:  catalog,
		order:    domain.NewOrder(),
		checkout: checkout,
		creds:    creds,
		log:      log,
	}
}

// Run blocks until the operator exits or input ends.
func (s *Session) Run(ctx context.Context) error {
	for s.cashier == "" {
		s.welcomeScreen()
		line, ok := s.readLine()
		if !ok {
			return nil
		}
		switch strings.TrimSpace(line) {
		case "1":
			s.signupFlow()
		case "2":
			s.loginFlow()
		case "3":
			s.println("\nExiting Wansilog. Thank you!")
			return nil
		case "":
			s.println("No input. Please try again.")
		default:
			s.println("\nInvalid choice. Please enter 1, 2, or 3.")
		}
	}

	for {
		s.order.Clear()
		if !s.orderMenu(ctx) {
			return nil
		}
		s.print("\nDo you want to process another order? (yes/no): ")
		again, ok := s.readLine()
		if !ok || strings.EqualFold(strings.TrimSpace(again), "no") {
			break
		}
	}
	s.printf("\nThank you for using the Wansilog Cash Register, %s!\n", s.cashier)
	return nil
}

func (s *Session) welcomeScreen() {
	s.println("\n===============================")
	s.println("   WELCOME TO WANSILOG!!")
	s.println("===============================")
	s.println("1. Sign Up")
	s.println("2. Log In")
	s.println("3. Exit")
	s.print("Enter your choice: ")
}

func (s *Session) signupFlow() {
	s.println("\n===============================")
	s.println("       User Sign Up")
	s.println("===============================")

	var username string
	for {
		s.print("Enter new username or 0 to cancel: ")
		line, ok := s.readLine()
		if !ok || line == "0" {
			s.println("Signup cancelled.")
			return
		}
		switch err := s.creds.CheckUsername(line); {
		case errors.Is(err, security.ErrUsernameTaken):
			s.println("Username already taken. Please choose another.")
			continue
		case errors.Is(err, security.ErrBadUsername):
			s.println("Username must be 5-15 alphanumeric characters.")
			continue
		}
		username = line
		break
	}

	for {
		s.print("Enter new password (at least one uppercase, one number, 8-20 characters) or 0 to cancel: ")
		line, ok := s.readLine()
		if !ok || line == "0" {
			s.println("Signup cancelled.")
			return
		}
		err := s.creds.SignUp(username, line)
		if errors.Is(err, security.ErrBadPassword) {
			s.println("Invalid password format. Please follow the rules.")
			continue
		}
		if err != nil {
			s.println("Signup failed. Please try again.")
			return
		}
		break
	}
	s.log.Info("cashier signed up", "cashier", username)
	s.println("\nSign up successful! You can now log in.")
}

func (s *Session) loginFlow() {
	s.println("\n===============================")
	s.println("       User Login")
	s.println("===============================")
	for {
		s.print("Enter username or 0 to cancel: ")
		username, ok := s.readLine()
		if !ok || username == "0" {
			s.println("Login cancelled.")
			return
		}
		s.print("Enter password or 0 to cancel: ")
		password, ok := s.readLine()
		if !ok || password == "0" {
			s.println("Login cancelled.")
			return
		}
		if err := s.creds.Login(username, password); err != nil {
			s.println("\nInvalid username or password. Please try again.")
			continue
		}
		s.cashier = username
		s.sessionID = uuid.NewString()
		s.log.Info("cashier logged in", "cashier", username, "session_id", s.sessionID)
		s.printf("\nLogin successful! Welcome, %s!\n", username)
		return
	}
}

// orderMenu runs one ordering session. Returns false when the terminal
// input ended and the whole run should stop.
func (s *Session) orderMenu(ctx context.Context) bool {
	for {
		s.println("\n===============================")
		s.println("Order Menu:")
		s.println("[1] Add Item")
		s.println("[2] Update Quantity")
		s.println("[3] Remove Item")
		s.println("[4] Display Orders")
		s.println("[5] Checkout")
		s.println("[6] Cancel Order")
		s.println("[0] Cancel/Back to Main Menu")
		s.print("Choose an option: ")
		choice, ok := s.readLine()
		if !ok {
			return false
		}
		switch strings.TrimSpace(choice) {
		case "1":
			s.addItemFlow()
		case "2":
			s.updateQuantityFlow()
		case "3":
			s.removeItemFlow()
		case "4":
			s.displayOrder()
		case "5":
			if s.order.IsEmpty() {
				s.println("Your order is empty.")
				continue
			}
			if s.checkoutFlow(ctx) {
				return true
			}
		case "6":
			s.order.Clear()
			s.println("Order cancelled.")
			return true
		case "0":
			s.order.Clear()
			s.println("Back to main menu.")
			return true
		default:
			s.println("Invalid choice. Please select from 1 to 6 or 0 to cancel.")
		}
	}
}

func (s *Session) addItemFlow() {
	s.println("\nAdd Item to Order:")
	for i, it := range s.catalog.Items {
		s.printf("[%d] %s - $%s\n", i+1, it.Name, it.BasePrice.StringFixed(2))
	}
	itemIdx, ok := s.promptIndex("Select item number or 0 to cancel: ", "Add item cancelled.")
	if !ok {
		return
	}

	for i, ad := range s.catalog.Addons {
		s.printf("[%d] %s - $%s\n", i+1, ad.Name, ad.ExtraPrice.StringFixed(2))
	}
	addonIdx, ok := s.promptIndex("Select addon number or 0 to cancel: ", "Add item cancelled.")
	if !ok {
		return
	}

	qty, ok := s.promptIndex("Enter quantity or 0 to cancel: ", "Add item cancelled.")
	if !ok {
		return
	}

	if _, err := s.order.AddLine(s.catalog, itemIdx-1, addonIdx-1, qty); err != nil {
		s.reportOrderError(err)
		return
	}
	s.println("Item added!")
}

func (s *Session) updateQuantityFlow() {
	if s.order.IsEmpty() {
		s.println("No items to update.")
		return
	}
	s.displayOrder()
	pos, ok := s.promptIndex("Enter order number to update or 0 to cancel: ", "Update cancelled.")
	if !ok {
		return
	}
	qty, ok := s.promptIndex("Enter new quantity or 0 to cancel: ", "Update cancelled.")
	if !ok {
		return
	}
	if err := s.order.UpdateQuantity(pos-1, qty); err != nil {
		s.reportOrderError(err)
		return
	}
	s.println("Quantity updated!")
}

func (s *Session) removeItemFlow() {
	if s.order.IsEmpty() {
		s.println("No item to remove.")
		return
	}
	s.displayOrder()
	pos, ok := s.promptIndex("Enter order number to remove or 0 to cancel: ", "Remove cancelled.")
	if !ok {
		return
	}
	if err := s.order.RemoveLine(pos - 1); err != nil {
		s.reportOrderError(err)
		return
	}
	s.println("Item removed!")
}

func (s *Session) displayOrder() {
	if s.order.IsEmpty() {
		s.println("Your order is empty.")
		return
	}
	s.println("\nCurrent Orders:")
	for i, li := range s.order.Lines() {
		s.printf("[%d] %s x%d (%s) - $%s\n",
			i+1, li.ItemName, li.Quantity, li.AddonName, li.LineTotal.StringFixed(2))
	}
	s.printf("Total: $%s\n", s.order.Total().StringFixed(2))
	s.println("[0] Cancel/Back to Order Menu")
}

// checkoutFlow re-prompts on Retry until the tender commits or the
// cashier cancels. Returns true when the transaction committed.
func (s *Session) checkoutFlow(ctx context.Context) bool {
	s.displayOrder()
	for {
		s.print("Enter payment amount or 0 to cancel: $")
		line, ok := s.readLine()
		if !ok {
			return false
		}
		res, err := s.checkout.Tender(ctx, s.cashier, s.order, line)
		if err != nil {
			s.println("Checkout failed. Please try again.")
			return false
		}
		switch res.Status {
		case usecase.StatusCancelled:
			s.println("Checkout cancelled.")
			return false
		case usecase.StatusCommitted:
			s.printf("Change: $%s\n", res.Change.StringFixed(2))
			s.println("Thank you for your order!")
			return true
		case usecase.StatusRetry:
			if errors.Is(res.Reason, domain.ErrInsufficientPayment) {
				s.println("Insufficient payment. Please try again.")
			} else {
				s.println("Invalid input. Please enter a valid amount.")
			}
		}
	}
}

// promptIndex reads a positive number; "0" cancels with cancelMsg. Bad
// input reports and cancels the flow, matching the menu's re-prompt style.
func (s *Session) promptIndex(prompt, cancelMsg string) (int, bool) {
	s.print(prompt)
	line, ok := s.readLine()
	if !ok || strings.TrimSpace(line) == "0" {
		s.println(cancelMsg)
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		s.println("Invalid input. Only numbers are allowed.")
		return 0, false
	}
	return n, true
}

func (s *Session) reportOrderError(err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.println("Invalid order number.")
	case errors.Is(err, domain.ErrValidation):
		s.println("Invalid selection. Please try again.")
	default:
		s.println("An error occurred. Please try again.")
		s.log.Error("order operation failed", "cashier", s.cashier, "err", err)
	}
}

func (s *Session) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

func (s *Session) print(a string)            { fmt.Fprint(s.out, a) }
func (s *Session) println(a string)          { fmt.Fprintln(s.out, a) }
func (s *Session) printf(f string, a ...any) { fmt.Fprintf(s.out, f, a...) }
