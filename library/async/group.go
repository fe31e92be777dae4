package async

import "context"

// Group starts services in order and stops them all when the group stops.
// The first start error aborts the group.
func Group(services ...Service) Service {
	return NewService(func(ctx context.Context, ready func()) (err error) {
		defer func() {
			for _, s := range services {
				s.Stop()
			}
			for _, s := range services {
				<-s.Stopped()
			}
			if err != nil {
				return
			}
			for _, s := range services {
				if err = s.StopError(); err != nil {
					return
				}
			}
		}()

		for _, s := range services {
			select {
			case <-s.Start():
			case <-ctx.Done():
				return nil
			}
			if err = s.StartError(); err != nil {
				return err
			}
		}

		ready()
		<-ctx.Done()
		return nil
	})
}
