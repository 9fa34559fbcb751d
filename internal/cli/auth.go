package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/app/models/dto"
)

// passwordEnv is read when --password is not given, to keep passwords out of shell history
const passwordEnv = "RC_PASSWORD"

func passwordFrom(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if p := os.Getenv(passwordEnv); p != "" {
		return p, nil
	}
	return "", errors.New("password required: pass --password or set " + passwordEnv)
}

func (a *app) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFrom(password)
			if err != nil {
				return err
			}
			if _, err := a.client.Login(cmd.Context(), email, pw); err != nil {
				return err
			}
			user, err := a.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(user)
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account e-mail")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (or $"+passwordEnv+")")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Logout(); err != nil {
				return err
			}
			return a.printMessage("Logged out")
		},
	}
}

func (a *app) signupCmd() *cobra.Command {
	var req dto.SignupRequest
	var userType, password string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account; a verification code is e-mailed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFrom(password)
			if err != nil {
				return err
			}
			req.Password = pw
			req.Type = models.UserType(userType)
			if !req.Type.IsValid() {
				return errors.New("--type must be stu or fac")
			}
			out, err := a.client.Signup(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Full name")
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "E-mail address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (or $"+passwordEnv+")")
	cmd.Flags().StringVar(&userType, "type", string(models.UserTypeStudent), "Account type: stu or fac")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(user)
		},
	}
}

func (a *app) refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the stored token for a fresh one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.client.Refresh(cmd.Context()); err != nil {
				return err
			}
			return a.printMessage("Token refreshed")
		},
	}
}

func (a *app) verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "E-mail verification",
	}

	var email string
	send := &cobra.Command{
		Use:   "send",
		Short: "Send a verification code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.message(a.client.SendVerificationCode(cmd.Context(), email))
		},
	}
	send.Flags().StringVarP(&email, "email", "e", "", "E-mail address")
	_ = send.MarkFlagRequired("email")

	var codeEmail string
	code := &cobra.Command{
		Use:   "code <code>",
		Short: "Confirm the e-mail address with the 6-digit code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.message(a.client.VerifyCode(cmd.Context(), codeEmail, args[0]))
		},
	}
	code.Flags().StringVarP(&codeEmail, "email", "e", "", "E-mail address")
	_ = code.MarkFlagRequired("email")

	link := &cobra.Command{
		Use:   "email <token>",
		Short: "Confirm the e-mail address with the token from the verification link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.message(a.client.VerifyEmail(cmd.Context(), args[0]))
		},
	}

	var resendEmail string
	resend := &cobra.Command{
		Use:   "resend",
		Short: "Send the verification e-mail again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.message(a.client.ResendVerification(cmd.Context(), resendEmail))
		},
	}
	resend.Flags().StringVarP(&resendEmail, "email", "e", "", "E-mail address")
	_ = resend.MarkFlagRequired("email")

	cmd.AddCommand(send, code, link, resend)
	return cmd
}

func (a *app) passwordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Password reset",
	}

	var email string
	forgot := &cobra.Command{
		Use:   "forgot",
		Short: "Request a password reset e-mail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.message(a.client.ForgotPassword(cmd.Context(), email))
		},
	}
	forgot.Flags().StringVarP(&email, "email", "e", "", "E-mail address")
	_ = forgot.MarkFlagRequired("email")

	check := &cobra.Command{
		Use:   "check <token>",
		Short: "Check that a reset token is still usable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.VerifyResetToken(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}

	var password string
	reset := &cobra.Command{
		Use:   "reset <token>",
		Short: "Set a new password with a reset token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFrom(password)
			if err != nil {
				return err
			}
			return a.message(a.client.ResetPassword(cmd.Context(), args[0], pw))
		},
	}
	reset.Flags().StringVarP(&password, "password", "p", "", "New password (or $"+passwordEnv+")")

	cmd.AddCommand(forgot, check, reset)
	return cmd
}

// message prints the acknowledgement of a message-only endpoint
func (a *app) message(msg string, err error) error {
	if err != nil {
		return err
	}
	return a.printMessage(msg)
}
