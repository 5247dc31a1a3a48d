package vektopay

import (
	"errors"
	"testing"
)

// fakeSurface records presentation calls for testing without a UI.
type fakeSurface struct {
	navigated   []string
	frames      []string
	frameOpen   bool
	navigateErr error
	frameErr    error
}

func (s *fakeSurface) Navigate(url string) error {
	if s.navigateErr != nil {
		return s.navigateErr
	}
	s.navigated = append(s.navigated, url)
	return nil
}

func (s *fakeSurface) OpenFrame(url string) (func(), error) {
	if s.frameErr != nil {
		return nil, s.frameErr
	}
	s.frames = append(s.frames, url)
	s.frameOpen = true
	return func() { s.frameOpen = false }, nil
}

func TestOpenChallengeWithoutSurface(t *testing.T) {
	client := New("key", "https://api.example")

	_, err := client.OpenChallenge(Challenge{URL: "https://ex/chal", Method: ChallengeRedirect})
	if !errors.Is(err, ErrChallengeNotSupported) {
		t.Fatalf("Expected ErrChallengeNotSupported, got %v", err)
	}
}

func TestOpenChallengeRedirect(t *testing.T) {
	surface := &fakeSurface{}
	client := New("key", "https://api.example", WithSurface(surface))

	handle, err := client.OpenChallenge(Challenge{URL: "https://ex/chal", Method: ChallengeRedirect})
	if err != nil {
		t.Fatalf("OpenChallenge failed: %v", err)
	}

	if len(surface.navigated) != 1 || surface.navigated[0] != "https://ex/chal" {
		t.Errorf("Expected navigation to challenge URL, got %v", surface.navigated)
	}
	if len(surface.frames) != 0 {
		t.Errorf("Redirect must not open a frame, got %v", surface.frames)
	}

	// Navigation is irreversible; Close is a no-op but must be safe.
	handle.Close()
	handle.Close()
}

func TestOpenChallengeIframe(t *testing.T) {
	surface := &fakeSurface{}
	client := New("key", "https://api.example", WithSurface(surface))

	handle, err := client.OpenChallenge(Challenge{URL: "https://ex/chal", Method: ChallengeIframe})
	if err != nil {
		t.Fatalf("OpenChallenge failed: %v", err)
	}

	if len(surface.frames) != 1 || surface.frames[0] != "https://ex/chal" {
		t.Errorf("Expected frame on challenge URL, got %v", surface.frames)
	}
	if !surface.frameOpen {
		t.Fatal("Expected the frame to be open")
	}

	handle.Close()
	if surface.frameOpen {
		t.Error("Close must remove the frame")
	}

	// Second close is a no-op.
	surface.frameOpen = true
	handle.Close()
	if !surface.frameOpen {
		t.Error("Handle must be single-use")
	}
}

func TestOpenChallengeEachCallIndependent(t *testing.T) {
	surface := &fakeSurface{}
	client := New("key", "https://api.example", WithSurface(surface))

	first, err := client.OpenChallenge(Challenge{URL: "https://ex/1", Method: ChallengeIframe})
	if err != nil {
		t.Fatalf("OpenChallenge failed: %v", err)
	}
	second, err := client.OpenChallenge(Challenge{URL: "https://ex/2", Method: ChallengeIframe})
	if err != nil {
		t.Fatalf("OpenChallenge failed: %v", err)
	}

	if len(surface.frames) != 2 {
		t.Fatalf("Expected two independent frames, got %v", surface.frames)
	}
	first.Close()
	second.Close()
}

func TestOpenChallengeSurfaceFailure(t *testing.T) {
	boom := errors.New("display unavailable")
	surface := &fakeSurface{frameErr: boom}
	client := New("key", "https://api.example", WithSurface(surface))

	_, err := client.OpenChallenge(Challenge{URL: "https://ex/chal", Method: ChallengeIframe})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected surface error to propagate, got %v", err)
	}
}
