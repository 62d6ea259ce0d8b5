package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/peyjabanki/internal/client/client"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkInput validates a request DTO against its struct tags before it is
// sent; the server still has the final say.
func checkInput(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

// scoped adds the competition filter the list endpoints accept; without a
// selection path is returned unchanged.
func scoped(path string, competitionID int, ok bool) string {
	if !ok {
		return path
	}
	return path + "?" + url.Values{"competition": {strconv.Itoa(competitionID)}}.Encode()
}

func getJSON(ctx context.Context, c client.Client, path string, out any) error {
	resp, err := c.Get(ctx, path)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

// sendJSON validates in, sends it with method and decodes the reply into out
// when out is not nil.
func sendJSON(ctx context.Context, c client.Client, method, path string, in, out any) error {
	if err := checkInput(in); err != nil {
		return err
	}
	resp, err := c.Do(ctx, method, path, in, nil)
	if err != nil {
		return err
	}
	if out == nil || len(resp.Body) == 0 {
		return nil
	}
	return resp.Decode(out)
}
