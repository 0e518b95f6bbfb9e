package collection

import (
	"errors"
	"sort"
	"strings"

	"github.com/arthur-debert/scrub/pkg/scruberr"
)

// Resolver expands function calls into literal script text. Resolution is
// pure: given the same collection and the same call it always produces the
// same text. The active call stack doubles as the cycle detector, so a
// cyclic definition fails with CYCLIC_CALL before any unbounded recursion.
type Resolver struct {
	collection *Collection
}

// NewResolver creates a resolver over the given collection.
func NewResolver(c *Collection) *Resolver {
	return &Resolver{collection: c}
}

// ResolvedScript is one script's fully resolved text: the forward body and,
// when the script is revertible, the revert body.
type ResolvedScript struct {
	Name       string
	Code       string
	RevertCode string
}

// ResolveScript produces the resolved forward and revert bodies for a
// script. Inline scripts pass through verbatim; caller scripts expand each
// function call in order, joined by newlines. The revert body is empty when
// neither the script nor any called function defines revert code.
func (r *Resolver) ResolveScript(script *Script) (ResolvedScript, error) {
	if script.IsInline() {
		return ResolvedScript{
			Name:       script.Name,
			Code:       script.Code,
			RevertCode: script.RevertCode,
		}, nil
	}

	var codes, reverts []string
	for _, call := range script.Calls {
		code, revert, err := r.resolveCall(call, nil, nil)
		if err != nil {
			return ResolvedScript{}, err
		}
		if code != "" {
			codes = append(codes, code)
		}
		if revert != "" {
			reverts = append(reverts, revert)
		}
	}

	return ResolvedScript{
		Name:       script.Name,
		Code:       strings.Join(codes, "\n"),
		RevertCode: strings.Join(reverts, "\n"),
	}, nil
}

// Resolve expands a single function call with an empty caller scope. It is
// the entry point for callers outside the compiler, e.g. tests.
func (r *Resolver) Resolve(call FunctionCall) (code, revert string, err error) {
	return r.resolveCall(call, nil, nil)
}

// resolveCall expands one call. callerEnv is the argument environment of
// the calling function (nil at script level); stack is the chain of
// function names currently being expanded.
func (r *Resolver) resolveCall(call FunctionCall, callerEnv map[string]string, stack []string) (string, string, error) {
	fn, ok := r.collection.Function(call.Function)
	if !ok {
		return "", "", scruberr.Newf(scruberr.ErrUnknownFunction,
			"unknown function %q", call.Function).
			WithDetail("function", call.Function)
	}

	// Cycle check before recursing, on the active call stack. This is the
	// only guard against unbounded expansion.
	for _, active := range stack {
		if active == fn.Name {
			cycle := strings.Join(append(stack, fn.Name), " -> ")
			return "", "", scruberr.Newf(scruberr.ErrCyclicCall,
				"cyclic function call: %s", cycle).
				WithDetail("function", fn.Name).
				WithDetail("cycle", cycle)
		}
	}

	env, err := r.bindArguments(fn, call, callerEnv)
	if err != nil {
		return "", "", err
	}

	if fn.IsInline() {
		code, err := substitute(fn.Code, env)
		if err != nil {
			return "", "", annotate(err, fn.Name)
		}
		revert := ""
		if fn.RevertCode != "" {
			revert, err = substitute(fn.RevertCode, env)
			if err != nil {
				return "", "", annotate(err, fn.Name)
			}
		}
		return code, revert, nil
	}

	next := append(stack, fn.Name)
	var codes, reverts []string
	for _, nested := range fn.Calls {
		code, revert, err := r.resolveCall(nested, env, next)
		if err != nil {
			return "", "", err
		}
		if code != "" {
			codes = append(codes, code)
		}
		if revert != "" {
			reverts = append(reverts, revert)
		}
	}
	return strings.Join(codes, "\n"), strings.Join(reverts, "\n"), nil
}

// bindArguments builds the argument environment for a call: each declared
// parameter takes the caller-supplied argument if present, else its
// declared default, else the empty string when optional, else the call
// fails with MISSING_ARGUMENT. Argument text is itself resolved against
// the caller's environment first, so values flow bottom-up and reach the
// callee as literal strings.
func (r *Resolver) bindArguments(fn *Function, call FunctionCall, callerEnv map[string]string) (map[string]string, error) {
	// Arguments naming parameters the function does not declare are a
	// definition error, reported deterministically.
	if len(call.Arguments) > 0 {
		names := make([]string, 0, len(call.Arguments))
		for name := range call.Arguments {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if _, declared := fn.Parameter(name); !declared {
				return nil, scruberr.Newf(scruberr.ErrUnknownParameter,
					"call to %q supplies undeclared parameter %q", fn.Name, name).
					WithDetail("function", fn.Name).
					WithDetail("parameter", name)
			}
		}
	}

	env := make(map[string]string, len(fn.Parameters))
	for _, param := range fn.Parameters {
		raw, supplied := call.Arguments[param.Name]
		switch {
		case supplied:
			value, err := resolveArgument(raw, callerEnv)
			if err != nil {
				return nil, annotate(err, fn.Name)
			}
			env[param.Name] = value
		case param.HasDefault:
			env[param.Name] = param.Default
		case param.Optional:
			env[param.Name] = ""
		default:
			return nil, scruberr.Newf(scruberr.ErrMissingArgument,
				"call to %q is missing required parameter %q", fn.Name, param.Name).
				WithDetail("function", fn.Name).
				WithDetail("parameter", param.Name)
		}
	}
	return env, nil
}

// resolveArgument expands template expressions in argument text against
// the caller's environment. At script level there is no environment, so
// any parameter reference in the text is an error rather than a silent
// pass-through.
func resolveArgument(text string, callerEnv map[string]string) (string, error) {
	if callerEnv == nil {
		if referencesParameters(text) {
			return "", scruberr.Newf(scruberr.ErrUnknownParameter,
				"argument %q references parameters outside a function scope", text)
		}
		return text, nil
	}
	return substitute(text, callerEnv)
}

// annotate attaches the function name to a resolution error that was
// produced below the call site.
func annotate(err error, function string) error {
	var serr *scruberr.Error
	if errors.As(err, &serr) {
		if _, exists := serr.Details["function"]; !exists {
			serr.WithDetail("function", function)
		}
	}
	return err
}
