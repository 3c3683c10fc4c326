//go:build gomock || generate

package logging

//go:generate sh -c "go run go.uber.org/mock/mockgen -build_flags=\"-tags=gomock\" -package mocklogging -destination ../internal/mocks/logging/tracer.go github.com/ddritzenhoff/ltcode/logging Tracer"
