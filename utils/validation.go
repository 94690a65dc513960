package utils

import (
	"HavenCare/models"
	"errors"
	"log"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validation errors
var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordNotComplex = errors.New("password must include at least one uppercase letter, one lowercase letter, one digit, and one special character")
)

// ValidateUserData validates user data using ozzo-validation.
func ValidateUserData(user models.User) error {
	err := validation.ValidateStruct(&user,
		validation.Field(&user.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&user.Email, validation.Required, is.Email),
		validation.Field(&user.Password, validation.Required.Error("password cannot be blank"), validation.By(validatePassword)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateBillInput validates a bill before the assembler accepts it.
func ValidateBillInput(bill *models.Bill) error {
	err := validation.ValidateStruct(bill,
		validation.Field(&bill.PatientID, validation.Required),
		validation.Field(&bill.DepartmentID, validation.Required),
		validation.Field(&bill.Discount, validation.Min(int64(0))),
		validation.Field(&bill.Tax, validation.Min(int64(0))),
		validation.Field(&bill.Items, validation.Required.Error("bill must have at least one item")),
	)
	if err != nil {
		return err
	}
	for i := range bill.Items {
		item := &bill.Items[i]
		if err := validation.ValidateStruct(item,
			validation.Field(&item.Description, validation.Required),
			validation.Field(&item.Category, validation.Required),
			validation.Field(&item.Quantity, validation.Required, validation.Min(int64(1))),
			validation.Field(&item.UnitPrice, validation.Min(int64(0))),
			validation.Field(&item.Discount, validation.Min(int64(0))),
		); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePaymentInput validates a payment before it is recorded. Negative
// amounts are only valid on adjustment entries.
func ValidatePaymentInput(payment *models.Payment) error {
	return validation.ValidateStruct(payment,
		validation.Field(&payment.BillID, validation.Required),
		validation.Field(&payment.CashierID, validation.Required),
		validation.Field(&payment.Method, validation.Required, validation.In(
			models.PaymentMethodCash,
			models.PaymentMethodCard,
			models.PaymentMethodTransfer,
			models.PaymentMethodHMO,
			models.PaymentMethodCorporate,
		)),
		validation.Field(&payment.Amount, validation.By(func(value interface{}) error {
			amount, _ := value.(int64)
			if amount == 0 {
				return errors.New("amount cannot be zero")
			}
			if amount < 0 && !payment.IsAdjustment {
				return errors.New("negative amounts require an adjustment entry")
			}
			return nil
		})),
	)
}

// ValidateCoverageRule validates a service coverage rule before it is saved.
func ValidateCoverageRule(rule *models.ServiceCoverage) error {
	return validation.ValidateStruct(rule,
		validation.Field(&rule.HMOProviderID, validation.Required),
		validation.Field(&rule.ServiceCategory, validation.Required),
		validation.Field(&rule.CoverageType, validation.Required, validation.In(
			models.CoverageTypeFull,
			models.CoverageTypePartialPercent,
			models.CoverageTypePartialFlat,
			models.CoverageTypeNone,
		)),
		validation.Field(&rule.CoveragePercentage, validation.By(func(interface{}) error {
			if rule.CoverageType != models.CoverageTypePartialPercent {
				return nil
			}
			if rule.CoveragePercentage <= 0 || rule.CoveragePercentage > 100 {
				return errors.New("coverage percentage must be between 1 and 100")
			}
			return nil
		})),
		validation.Field(&rule.CoverageFlatAmount, validation.By(func(interface{}) error {
			if rule.CoverageType != models.CoverageTypePartialFlat {
				return nil
			}
			if rule.CoverageFlatAmount <= 0 {
				return errors.New("flat coverage amount must be positive")
			}
			return nil
		})),
	)
}

// validatePassword checks the password for length and complexity.
func validatePassword(value interface{}) error {
	password, _ := value.(string)

	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	var (
		lowercaseRegex = regexp.MustCompile(`[a-z]`)
		uppercaseRegex = regexp.MustCompile(`[A-Z]`)
		digitRegex     = regexp.MustCompile(`\d`)
		specialRegex   = regexp.MustCompile(`[@$!%*?&]`)
	)

	if !lowercaseRegex.MatchString(password) ||
		!uppercaseRegex.MatchString(password) ||
		!digitRegex.MatchString(password) ||
		!specialRegex.MatchString(password) {
		return ErrPasswordNotComplex
	}

	return nil
}
